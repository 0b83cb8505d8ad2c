package usecase

import (
	"context"
	"errors"
	"time"

	"timetable-calendar-sync/internal/model"
	syncDomain "timetable-calendar-sync/internal/sync"
	"timetable-calendar-sync/internal/sync/repository"
)

// StartSync spawns the background sync run for the date range.
func (uc *implUseCase) StartSync(ctx context.Context, input syncDomain.StartInput) (model.RunHandle, error) {
	if !input.Range.Valid() {
		return model.RunHandle{}, syncDomain.ErrInvalidRange
	}

	handle, runCtx, ok := uc.tracker.Begin(model.RunKindSync)
	if !ok {
		return model.RunHandle{}, syncDomain.ErrAlreadyRunning
	}

	uc.l.Infof(ctx, "sync: run %s started for %s – %s",
		handle.ID, input.Range.Start.Format("2006-01-02"), input.Range.End.Format("2006-01-02"))

	go uc.runSync(runCtx, input.Range)
	return handle, nil
}

// runSync drives fetch → normalize → insert. Never lets a failure escape;
// every path ends by logging and returning the tracker to idle.
func (uc *implUseCase) runSync(ctx context.Context, r model.DateRange) {
	defer uc.tracker.End()

	uc.logs.Appendf("sync started: %s – %s",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))

	lessons, err := uc.timetable.FetchLessons(ctx, r)
	if err != nil {
		uc.l.Errorf(ctx, "sync: fetch failed: %v", err)
		uc.logs.Appendf("fetch failed: %v", err)
		uc.logs.Append("sync finished: 0 events inserted")
		return
	}

	events := NormalizeLessons(lessons, uc.loc)
	if len(events) == 0 {
		uc.logs.Append("no events found in range")
		return
	}
	uc.logs.Appendf("normalized %d of %d lessons", len(events), len(lessons))

	inserted := 0
	for _, event := range events {
		if ctx.Err() != nil {
			uc.logs.Append("stopped by user")
			break
		}

		if err := uc.insertWithRetry(ctx, event); err != nil {
			if ctx.Err() != nil {
				uc.logs.Append("stopped by user")
				break
			}
			uc.l.Warnf(ctx, "sync: insert failed for %q: %v", event.Summary, err)
			uc.logs.Appendf("insert failed: %s (%v)", event.Summary, err)
			continue
		}

		inserted++
		uc.logs.Appendf("added: %s (%s)", event.Summary, event.Start.Format("2006-01-02 15:04"))
	}

	uc.logs.Appendf("sync finished: %d of %d events inserted", inserted, len(events))
	uc.l.Infof(ctx, "sync: finished, %d/%d inserted", inserted, len(events))
}

// insertWithRetry inserts one event, retrying only rate-limit rejections with
// the bounded insert policy. Any other remote error is returned to the caller
// so the run can move on to the next event.
func (uc *implUseCase) insertWithRetry(ctx context.Context, event model.Event) error {
	for attempt := 0; ; attempt++ {
		_, err := uc.calendar.InsertEvent(ctx, event)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrRateLimited) {
			return err
		}
		if attempt+1 >= uc.insertPolicy.MaxAttempts {
			return err
		}

		delay := uc.insertPolicy.Delay(attempt)
		uc.logs.Appendf("rate limited, retrying in %s", delay.Round(100*time.Millisecond))
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// sleep waits for d or until the run is aborted.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
