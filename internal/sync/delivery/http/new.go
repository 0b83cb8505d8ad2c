package http

import (
	"github.com/gin-gonic/gin"

	syncDomain "timetable-calendar-sync/internal/sync"
	"timetable-calendar-sync/pkg/datemath"
	pkgLog "timetable-calendar-sync/pkg/log"
)

// Handler exposes the sync engine over HTTP.
type Handler interface {
	Sync(c *gin.Context)
	Clear(c *gin.Context)
	Abort(c *gin.Context)
	Status(c *gin.Context)
}

type handler struct {
	l     pkgLog.Logger
	uc    syncDomain.UseCase
	dates *datemath.Parser
}

// New creates the HTTP delivery handler for the sync engine.
func New(l pkgLog.Logger, uc syncDomain.UseCase, dates *datemath.Parser) Handler {
	return &handler{l: l, uc: uc, dates: dates}
}
