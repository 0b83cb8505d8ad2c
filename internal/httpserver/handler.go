package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"timetable-calendar-sync/internal/middleware"
	"timetable-calendar-sync/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l)
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestLog())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "server mode: production")
	} else {
		srv.l.Infof(ctx, "server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers the sync engine routes.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1")
	api.POST("/sync", srv.syncHandler.Sync)
	api.POST("/clear", srv.syncHandler.Clear)
	api.POST("/abort", srv.syncHandler.Abort)
	api.GET("/status", srv.syncHandler.Status)

	srv.l.Infof(ctx, "sync routes registered under /api/v1")
}
