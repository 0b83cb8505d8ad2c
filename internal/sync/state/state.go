// Package state owns the process-wide run state and log buffer shared
// between the background worker and status pollers. All access is
// synchronized here; callers never see the raw flag or buffer.
package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"timetable-calendar-sync/internal/model"
)

// Tracker guards the single-run invariant and carries the abort signal.
// The worker goroutine is the sole caller of End; any goroutine may call
// Abort or Snapshot.
type Tracker struct {
	mu      sync.Mutex
	run     *model.RunHandle
	cancel  context.CancelFunc
	aborted bool
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin transitions idle→running and returns the run handle plus the context
// the worker must run under. Returns ok=false while another run is active.
// The abort flag is cleared on every successful Begin.
func (t *Tracker) Begin(kind model.RunKind) (model.RunHandle, context.Context, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.run != nil {
		return model.RunHandle{}, nil, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	handle := model.RunHandle{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now(),
	}
	t.run = &handle
	t.cancel = cancel
	t.aborted = false
	return handle, ctx, true
}

// End transitions running→idle. Called exactly once by the worker on completion.
func (t *Tracker) End() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.run = nil
	t.cancel = nil
}

// Abort sets the abort flag and cancels the worker context.
// Returns false when no run is active.
func (t *Tracker) Abort() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.run == nil {
		return false
	}
	t.aborted = true
	t.cancel()
	return true
}

// Snapshot returns the current run, or nil when idle. The returned handle is
// a copy; mutating it does not affect the tracker.
func (t *Tracker) Snapshot() *model.RunHandle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.run == nil {
		return nil
	}
	h := *t.run
	return &h
}

// Aborted reports whether the current run was asked to stop.
func (t *Tracker) Aborted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.aborted
}

// LogBuffer is a bounded append-only ring of log lines. When full, the oldest
// entry is dropped.
type LogBuffer struct {
	mu      sync.Mutex
	entries []model.LogEntry
	head    int // index of the oldest entry once the ring wrapped
	count   int // entries currently held, <= cap
	total   int // entries ever appended
}

// NewLogBuffer creates a ring holding at most capacity entries.
func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = 500
	}
	return &LogBuffer{entries: make([]model.LogEntry, capacity)}
}

// Append adds one line, dropping the oldest when the ring is full.
func (b *LogBuffer) Append(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := (b.head + b.count) % len(b.entries)
	b.entries[idx] = model.LogEntry{At: time.Now(), Message: message}
	if b.count < len(b.entries) {
		b.count++
	} else {
		b.head = (b.head + 1) % len(b.entries)
	}
	b.total++
}

// Appendf formats and appends one line.
func (b *LogBuffer) Appendf(format string, args ...any) {
	b.Append(fmt.Sprintf(format, args...))
}

// Tail returns the most recent n lines, oldest first, formatted with their
// timestamps.
func (b *LogBuffer) Tail(n int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.count {
		n = b.count
	}
	lines := make([]string, 0, n)
	for i := b.count - n; i < b.count; i++ {
		e := b.entries[(b.head+i)%len(b.entries)]
		lines = append(lines, fmt.Sprintf("%s %s", e.At.Format("15:04:05"), e.Message))
	}
	return lines
}

// Total returns the number of lines ever appended.
func (b *LogBuffer) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}
