package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"timetable-calendar-sync/internal/model"
	syncDomain "timetable-calendar-sync/internal/sync"
	"timetable-calendar-sync/pkg/sdui"
)

// mock logger

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

// fake repositories

type fakeTimetable struct {
	mu      sync.Mutex
	lessons []sdui.Lesson
	err     error
	calls   int
}

func (f *fakeTimetable) FetchLessons(ctx context.Context, r model.DateRange) ([]sdui.Lesson, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return f.lessons, nil
}

func (f *fakeTimetable) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCalendar struct {
	mu sync.Mutex

	insertFunc func(call int, e model.Event) error
	listFunc   func(call int) ([]model.RemoteEventRef, error)
	deleteFunc func(call int, id string) error

	inserted []model.Event
	deleted  []string
	lists    int
	inserts  int
	deletes  int
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, e model.Event) (string, error) {
	f.mu.Lock()
	call := f.inserts
	f.inserts++
	f.mu.Unlock()

	if f.insertFunc != nil {
		if err := f.insertFunc(call, e); err != nil {
			return "", err
		}
	}

	f.mu.Lock()
	f.inserted = append(f.inserted, e)
	f.mu.Unlock()
	return "remote-id", nil
}

func (f *fakeCalendar) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]model.RemoteEventRef, error) {
	f.mu.Lock()
	call := f.lists
	f.lists++
	f.mu.Unlock()

	if f.listFunc != nil {
		return f.listFunc(call)
	}
	return nil, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, id string) error {
	f.mu.Lock()
	call := f.deletes
	f.deletes++
	f.mu.Unlock()

	if f.deleteFunc != nil {
		if err := f.deleteFunc(call, id); err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeCalendar) insertedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

func (f *fakeCalendar) deletedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}

func (f *fakeCalendar) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

// waitIdle blocks until the engine returns to idle and returns the final status.
func waitIdle(t *testing.T, uc syncDomain.UseCase) syncDomain.StatusOutput {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		st := uc.Status(context.Background())
		if !st.Running {
			return st
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("run did not finish in time")
	return syncDomain.StatusOutput{}
}

func hasLogLine(logs []string, substr string) bool {
	for _, l := range logs {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRange() model.DateRange {
	return model.DateRange{Start: day(2025, time.September, 1), End: day(2025, time.September, 5)}
}
