package usecase

import (
	"context"
	"errors"
	"time"

	"timetable-calendar-sync/internal/model"
	syncDomain "timetable-calendar-sync/internal/sync"
	"timetable-calendar-sync/internal/sync/repository"
)

const deleteProgressEvery = 10

// StartClear spawns the background clear run for the date range.
func (uc *implUseCase) StartClear(ctx context.Context, input syncDomain.StartInput) (model.RunHandle, error) {
	if !input.Range.Valid() {
		return model.RunHandle{}, syncDomain.ErrInvalidRange
	}

	handle, runCtx, ok := uc.tracker.Begin(model.RunKindClear)
	if !ok {
		return model.RunHandle{}, syncDomain.ErrAlreadyRunning
	}

	uc.l.Infof(ctx, "clear: run %s started for %s – %s",
		handle.ID, input.Range.Start.Format("2006-01-02"), input.Range.End.Format("2006-01-02"))

	go uc.runClear(runCtx, input.Range)
	return handle, nil
}

// runClear repeats list → delete passes over the day-bounded window until it
// is empty, aborted, or the pass budget runs out. A listed view can be stale
// while deletes are in flight, so a single sweep is not enough; re-scanning
// converges the window to empty.
func (uc *implUseCase) runClear(ctx context.Context, r model.DateRange) {
	defer uc.tracker.End()

	timeMin := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, uc.loc)
	timeMax := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 23, 59, 59, 0, uc.loc)

	uc.logs.Appendf("clear started: %s – %s",
		timeMin.Format("2006-01-02"), timeMax.Format("2006-01-02"))

	totalDeleted := 0
	for pass := 1; pass <= uc.clearMaxPasses; pass++ {
		if ctx.Err() != nil {
			uc.logs.Append("stopped by user")
			break
		}

		refs, err := uc.calendar.ListEvents(ctx, timeMin, timeMax)
		if err != nil {
			// A failed scan ends the pass, not the run.
			uc.l.Warnf(ctx, "clear: pass %d list failed: %v", pass, err)
			continue
		}
		if len(refs) == 0 {
			uc.logs.Append("window is clean")
			break
		}

		uc.logs.Appendf("pass %d: found %d events", pass, len(refs))

		deleted, aborted := uc.deletePass(ctx, pass, refs)
		totalDeleted += deleted
		if aborted {
			uc.logs.Append("stopped by user")
			break
		}
		if deleted == 0 {
			// Listing was non-empty but nothing came off: every delete
			// failed, so looping further cannot converge.
			uc.logs.Appendf("no progress in pass %d, giving up", pass)
			break
		}
	}

	uc.logs.Appendf("clear finished: %d events deleted", totalDeleted)
	uc.l.Infof(ctx, "clear: finished, %d deleted", totalDeleted)
}

// deletePass deletes every listed ref, reporting progress in fixed batches.
func (uc *implUseCase) deletePass(ctx context.Context, pass int, refs []model.RemoteEventRef) (deleted int, aborted bool) {
	for _, ref := range refs {
		if ctx.Err() != nil {
			return deleted, true
		}

		if err := uc.deleteWithRetry(ctx, ref.ID); err != nil {
			if ctx.Err() != nil {
				return deleted, true
			}
			uc.l.Warnf(ctx, "clear: delete failed for %s: %v", ref.ID, err)
			continue
		}

		deleted++
		if deleted%deleteProgressEvery == 0 {
			uc.logs.Appendf("pass %d: deleted %d/%d", pass, deleted, len(refs))
		}
	}
	return deleted, false
}

// deleteWithRetry deletes one event, retrying rate-limit rejections with the
// constant delete policy. A missing target is a benign no-op.
func (uc *implUseCase) deleteWithRetry(ctx context.Context, id string) error {
	for attempt := 0; ; attempt++ {
		err := uc.calendar.DeleteEvent(ctx, id)
		if err == nil || errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if !errors.Is(err, repository.ErrRateLimited) {
			return err
		}
		if attempt+1 >= uc.deletePolicy.MaxAttempts {
			return err
		}
		if err := sleep(ctx, uc.deletePolicy.Delay(attempt)); err != nil {
			return err
		}
	}
}
