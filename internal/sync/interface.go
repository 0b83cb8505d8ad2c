package sync

import (
	"context"

	"timetable-calendar-sync/internal/model"
)

// UseCase is the synchronization engine exposed to callers (HTTP routes, CLI).
type UseCase interface {
	// StartSync spawns one background run that mirrors the timetable for the
	// date range into the remote calendar. Rejected while another run is active.
	StartSync(ctx context.Context, input StartInput) (model.RunHandle, error)

	// StartClear spawns one background run that deletes all remote events in
	// the date range. Rejected while another run is active.
	StartClear(ctx context.Context, input StartInput) (model.RunHandle, error)

	// RequestAbort asks the active run to stop at its next iteration boundary.
	RequestAbort(ctx context.Context) error

	// Status returns the current run state and the tail of the log feed.
	Status(ctx context.Context) StatusOutput
}
