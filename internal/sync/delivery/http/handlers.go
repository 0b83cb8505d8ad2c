package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	syncDomain "timetable-calendar-sync/internal/sync"
	"timetable-calendar-sync/pkg/response"
)

// Sync handles POST /api/v1/sync.
func (h *handler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processStartRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "sync request rejected: %v", err)
		response.Error(c, err, nil)
		return
	}

	handle, err := h.uc.StartSync(ctx, input)
	if err != nil {
		h.respondStartError(c, err)
		return
	}
	response.OK(c, newRunResp(handle))
}

// Clear handles POST /api/v1/clear.
func (h *handler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processStartRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "clear request rejected: %v", err)
		response.Error(c, err, nil)
		return
	}

	handle, err := h.uc.StartClear(ctx, input)
	if err != nil {
		h.respondStartError(c, err)
		return
	}
	response.OK(c, newRunResp(handle))
}

// Abort handles POST /api/v1/abort.
func (h *handler) Abort(c *gin.Context) {
	if err := h.uc.RequestAbort(c.Request.Context()); err != nil {
		if errors.Is(err, syncDomain.ErrNotRunning) {
			response.Conflict(c, err)
			return
		}
		response.Error(c, err, nil)
		return
	}
	response.OK(c, gin.H{"status": "abort requested"})
}

// Status handles GET /api/v1/status.
func (h *handler) Status(c *gin.Context) {
	st := h.uc.Status(c.Request.Context())
	response.OK(c, newStatusResp(st))
}

func (h *handler) respondStartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, syncDomain.ErrAlreadyRunning):
		response.Conflict(c, err)
	case errors.Is(err, syncDomain.ErrInvalidRange):
		response.Error(c, err, nil)
	default:
		h.l.Errorf(c.Request.Context(), "start failed: %v", err)
		response.InternalError(c, err)
	}
}
