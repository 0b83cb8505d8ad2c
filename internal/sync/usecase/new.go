package usecase

import (
	"time"

	"timetable-calendar-sync/internal/sync/repository"
	"timetable-calendar-sync/internal/sync/state"
	"timetable-calendar-sync/pkg/backoff"
	pkgLog "timetable-calendar-sync/pkg/log"
)

// Options tunes the two workers.
type Options struct {
	Location       *time.Location // target timezone for event timestamps
	InsertPolicy   backoff.Policy // rate-limit retry for inserts
	DeletePolicy   backoff.Policy // rate-limit retry for deletes
	ClearMaxPasses int            // convergence passes before giving up
	LogCapacity    int            // ring buffer size
}

type implUseCase struct {
	l         pkgLog.Logger
	timetable repository.TimetableRepository
	calendar  repository.CalendarRepository

	tracker *state.Tracker
	logs    *state.LogBuffer

	loc            *time.Location
	insertPolicy   backoff.Policy
	deletePolicy   backoff.Policy
	clearMaxPasses int
}

// New creates the sync engine. The tracker and log buffer are owned here;
// callers interact with them only through the UseCase interface.
func New(
	l pkgLog.Logger,
	timetable repository.TimetableRepository,
	calendar repository.CalendarRepository,
	opts Options,
) *implUseCase {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	insertPolicy := opts.InsertPolicy
	if insertPolicy.MaxAttempts == 0 {
		insertPolicy = backoff.Exponential(8, time.Second, 60*time.Second, 500*time.Millisecond)
	}
	deletePolicy := opts.DeletePolicy
	if deletePolicy.MaxAttempts == 0 {
		deletePolicy = backoff.Constant(5, 2*time.Second)
	}
	passes := opts.ClearMaxPasses
	if passes <= 0 {
		passes = 5
	}

	return &implUseCase{
		l:              l,
		timetable:      timetable,
		calendar:       calendar,
		tracker:        state.NewTracker(),
		logs:           state.NewLogBuffer(opts.LogCapacity),
		loc:            loc,
		insertPolicy:   insertPolicy,
		deletePolicy:   deletePolicy,
		clearMaxPasses: passes,
	}
}
