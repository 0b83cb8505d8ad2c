package sdui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"timetable-calendar-sync/internal/model"
	"timetable-calendar-sync/internal/sync/repository"
	pkgLog "timetable-calendar-sync/pkg/log"
	pkgSdui "timetable-calendar-sync/pkg/sdui"
)

// timetableClient is the subset of the SDUI client used here. Narrowed to an
// interface so tests can fake the provider.
type timetableClient interface {
	FetchTimetable(ctx context.Context, begin, end time.Time) (*pkgSdui.Timetable, error)
}

type implRepository struct {
	client timetableClient
	cache  *expirable.LRU[string, []pkgSdui.Lesson]
	l      pkgLog.Logger
}

// New creates a TimetableRepository backed by the SDUI API. Fetched windows
// are cached for cacheTTL so a re-run of the same range within the TTL does
// not hit the provider again.
func New(client *pkgSdui.Client, cacheTTL time.Duration, l pkgLog.Logger) repository.TimetableRepository {
	return newWithClient(client, cacheTTL, l)
}

func newWithClient(client timetableClient, cacheTTL time.Duration, l pkgLog.Logger) *implRepository {
	return &implRepository{
		client: client,
		cache:  expirable.NewLRU[string, []pkgSdui.Lesson](32, nil, cacheTTL),
		l:      l,
	}
}

// FetchLessons returns the raw lessons for the inclusive date range.
func (r *implRepository) FetchLessons(ctx context.Context, dr model.DateRange) ([]pkgSdui.Lesson, error) {
	key := cacheKey(dr)
	if lessons, ok := r.cache.Get(key); ok {
		r.l.Debugf(ctx, "sdui: cache hit for %s", key)
		return lessons, nil
	}

	timetable, err := r.client.FetchTimetable(ctx, dr.Start, dr.End)
	if err != nil {
		if errors.Is(err, pkgSdui.ErrMissingCredentials) {
			return nil, fmt.Errorf("%w: %v", repository.ErrMissingConfig, err)
		}
		return nil, fmt.Errorf("failed to fetch timetable: %w", err)
	}

	lessons := timetable.Data.Lessons
	r.cache.Add(key, lessons)
	r.l.Infof(ctx, "sdui: fetched %d lessons for %s", len(lessons), key)
	return lessons, nil
}

func cacheKey(dr model.DateRange) string {
	return dr.Start.Format("2006-01-02") + ".." + dr.End.Format("2006-01-02")
}
