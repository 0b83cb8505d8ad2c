package usecase

import (
	"context"

	syncDomain "timetable-calendar-sync/internal/sync"
)

const statusLogLines = 50

// RequestAbort asks the active run to stop. The worker observes the signal at
// its next iteration boundary; in-flight calls are not interrupted.
func (uc *implUseCase) RequestAbort(ctx context.Context) error {
	if !uc.tracker.Abort() {
		return syncDomain.ErrNotRunning
	}
	uc.logs.Append("abort requested")
	uc.l.Infof(ctx, "abort requested")
	return nil
}

// Status returns a snapshot of the run state and the log tail.
func (uc *implUseCase) Status(ctx context.Context) syncDomain.StatusOutput {
	run := uc.tracker.Snapshot()
	return syncDomain.StatusOutput{
		Running:     run != nil,
		Run:         run,
		RecentLogs:  uc.logs.Tail(statusLogLines),
		TotalLogged: uc.logs.Total(),
	}
}
