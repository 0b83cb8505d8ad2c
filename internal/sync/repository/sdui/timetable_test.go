package sdui

import (
	"context"
	"errors"
	"testing"
	"time"

	"timetable-calendar-sync/internal/model"
	"timetable-calendar-sync/internal/sync/repository"
	pkgSdui "timetable-calendar-sync/pkg/sdui"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type fakeClient struct {
	calls     int
	timetable *pkgSdui.Timetable
	err       error
}

func (f *fakeClient) FetchTimetable(ctx context.Context, begin, end time.Time) (*pkgSdui.Timetable, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.timetable, nil
}

func testRange() model.DateRange {
	return model.DateRange{
		Start: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchLessonsCachesWindow(t *testing.T) {
	tt := &pkgSdui.Timetable{}
	tt.Data.Lessons = []pkgSdui.Lesson{{BeginsAt: 1, EndsAt: 2}}
	client := &fakeClient{timetable: tt}
	repo := newWithClient(client, time.Minute, &mockLogger{})

	for i := 0; i < 3; i++ {
		lessons, err := repo.FetchLessons(context.Background(), testRange())
		if err != nil {
			t.Fatalf("FetchLessons() #%d error = %v", i, err)
		}
		if len(lessons) != 1 {
			t.Fatalf("FetchLessons() #%d returned %d lessons, want 1", i, len(lessons))
		}
	}
	if client.calls != 1 {
		t.Errorf("provider called %d times, want 1 (cache should absorb repeats)", client.calls)
	}

	// A different window is a cache miss.
	other := testRange()
	other.End = other.End.AddDate(0, 0, 1)
	if _, err := repo.FetchLessons(context.Background(), other); err != nil {
		t.Fatalf("FetchLessons() other window error = %v", err)
	}
	if client.calls != 2 {
		t.Errorf("provider called %d times, want 2", client.calls)
	}
}

func TestFetchLessonsMissingCredentials(t *testing.T) {
	client := &fakeClient{err: pkgSdui.ErrMissingCredentials}
	repo := newWithClient(client, time.Minute, &mockLogger{})

	_, err := repo.FetchLessons(context.Background(), testRange())
	if !errors.Is(err, repository.ErrMissingConfig) {
		t.Fatalf("error = %v, want ErrMissingConfig", err)
	}
}

func TestFetchLessonsProviderError(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream down")}
	repo := newWithClient(client, time.Minute, &mockLogger{})

	_, err := repo.FetchLessons(context.Background(), testRange())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, repository.ErrMissingConfig) {
		t.Fatal("generic provider error must not map to ErrMissingConfig")
	}
	// Errors must not be cached.
	client.err = nil
	client.timetable = &pkgSdui.Timetable{}
	if _, err := repo.FetchLessons(context.Background(), testRange()); err != nil {
		t.Fatalf("retry after error failed: %v", err)
	}
	if client.calls != 2 {
		t.Errorf("provider called %d times, want 2", client.calls)
	}
}
