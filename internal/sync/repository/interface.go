package repository

import (
	"context"
	"time"

	"timetable-calendar-sync/internal/model"
	"timetable-calendar-sync/pkg/sdui"
)

// TimetableRepository fetches raw lesson records from the timetable provider.
type TimetableRepository interface {
	// FetchLessons returns the raw lessons for the inclusive date range.
	// No retry is performed here; a failed fetch aborts the whole run.
	FetchLessons(ctx context.Context, r model.DateRange) ([]sdui.Lesson, error)
}

// CalendarRepository wraps the remote calendar operations used by the workers.
type CalendarRepository interface {
	// InsertEvent inserts one event and returns the provider-assigned id.
	InsertEvent(ctx context.Context, event model.Event) (string, error)

	// ListEvents returns every event between timeMin and timeMax,
	// accumulated across all pages.
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]model.RemoteEventRef, error)

	// DeleteEvent deletes one event by id. Returns ErrNotFound when the
	// target is already absent.
	DeleteEvent(ctx context.Context, id string) error
}
