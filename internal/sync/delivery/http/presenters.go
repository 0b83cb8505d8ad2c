package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"timetable-calendar-sync/internal/model"
	syncDomain "timetable-calendar-sync/internal/sync"
	"timetable-calendar-sync/pkg/response"
)

var errBadDate = errors.New("start and end must be YYYY-MM-DD dates or relative expressions like \"today\"")

// startReq is the body for POST /api/v1/sync and /api/v1/clear.
// Start and end accept absolute dates and the relative forms the
// datemath parser understands ("today", "next friday", "in 2 weeks").
type startReq struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// processStartRequest parses and validates the date range body.
func (h *handler) processStartRequest(c *gin.Context) (syncDomain.StartInput, error) {
	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return syncDomain.StartInput{}, err
	}

	now := time.Now()
	start, err := h.dates.Parse(req.Start, now)
	if err != nil {
		return syncDomain.StartInput{}, errBadDate
	}
	end, err := h.dates.Parse(req.End, now)
	if err != nil {
		return syncDomain.StartInput{}, errBadDate
	}

	return syncDomain.StartInput{Range: model.DateRange{Start: start, End: end}}, nil
}

type runResp struct {
	RunID     string            `json:"run_id"`
	Kind      string            `json:"kind"`
	StartedAt response.DateTime `json:"started_at"`
}

func newRunResp(handle model.RunHandle) runResp {
	return runResp{
		RunID:     handle.ID,
		Kind:      string(handle.Kind),
		StartedAt: response.DateTime(handle.StartedAt),
	}
}

type statusResp struct {
	Running    bool     `json:"running"`
	Run        *runResp `json:"run,omitempty"`
	RecentLogs []string `json:"recent_logs"`
	LogTotal   int      `json:"log_total"`
}

func newStatusResp(st syncDomain.StatusOutput) statusResp {
	resp := statusResp{
		Running:    st.Running,
		RecentLogs: st.RecentLogs,
		LogTotal:   st.TotalLogged,
	}
	if st.Run != nil {
		r := newRunResp(*st.Run)
		resp.Run = &r
	}
	return resp
}
