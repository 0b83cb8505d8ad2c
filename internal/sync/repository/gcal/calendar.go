package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"timetable-calendar-sync/internal/model"
	"timetable-calendar-sync/internal/sync/repository"
	"timetable-calendar-sync/pkg/gcalendar"
	pkgLog "timetable-calendar-sync/pkg/log"
)

// calendarClient is the subset of the Google Calendar client used here.
type calendarClient interface {
	InsertEvent(ctx context.Context, req gcalendar.InsertEventRequest) (*gcalendar.Event, error)
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

type implRepository struct {
	client     calendarClient
	calendarID string
	timezone   string
	limiter    *rate.Limiter
	l          pkgLog.Logger
}

// New creates a CalendarRepository for one target calendar. Every remote call
// waits on a client-side limiter; the remote enforces a global per-credential
// quota, so smoothing bursts here keeps the reactive backoff path rare.
func New(client *gcalendar.Client, calendarID, timezone string, requestsPerMinute int, l pkgLog.Logger) repository.CalendarRepository {
	return newWithClient(client, calendarID, timezone, requestsPerMinute, l)
}

func newWithClient(client calendarClient, calendarID, timezone string, requestsPerMinute int, l pkgLog.Logger) *implRepository {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 300
	}
	return &implRepository{
		client:     client,
		calendarID: calendarID,
		timezone:   timezone,
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 10),
		l:          l,
	}
}

// InsertEvent inserts one normalized event and returns the remote id.
func (r *implRepository) InsertEvent(ctx context.Context, event model.Event) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}

	created, err := r.client.InsertEvent(ctx, gcalendar.InsertEventRequest{
		CalendarID:  r.calendarID,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		ColorID:     event.Category.ColorID(),
		StartTime:   event.Start,
		EndTime:     event.End,
		Timezone:    r.timezone,
	})
	if err != nil {
		return "", r.classify(ctx, err)
	}
	return created.ID, nil
}

// ListEvents returns every remote event in [timeMin, timeMax].
func (r *implRepository) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]model.RemoteEventRef, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	events, err := r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: r.calendarID,
		TimeMin:    timeMin,
		TimeMax:    timeMax,
	})
	if err != nil {
		return nil, r.classify(ctx, err)
	}

	refs := make([]model.RemoteEventRef, 0, len(events))
	for _, e := range events {
		refs = append(refs, model.RemoteEventRef{ID: e.ID, Summary: e.Summary, Start: e.StartTime})
	}
	return refs, nil
}

// DeleteEvent deletes one remote event by id.
func (r *implRepository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := r.client.DeleteEvent(ctx, r.calendarID, id); err != nil {
		return r.classify(ctx, err)
	}
	return nil
}

// classify maps provider errors onto the repository sentinels.
func (r *implRepository) classify(ctx context.Context, err error) error {
	switch {
	case gcalendar.IsRateLimited(err):
		r.l.Warnf(ctx, "gcal: rate limited: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrRateLimited, err)
	case gcalendar.IsNotFound(err):
		return fmt.Errorf("%w: %v", repository.ErrNotFound, err)
	default:
		return err
	}
}
