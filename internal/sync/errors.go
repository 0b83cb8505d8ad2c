package sync

import "errors"

// Domain-specific errors for the sync engine.
var (
	ErrAlreadyRunning = errors.New("a run is already active")
	ErrNotRunning     = errors.New("no run is active")
	ErrInvalidRange   = errors.New("date range start must not be after end")
)
