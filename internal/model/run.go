package model

import "time"

// Environment names.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// DateRange is an inclusive calendar date window. Start must not be after End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the range is ordered.
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

// RunKind distinguishes the two background workflows.
type RunKind string

const (
	RunKindSync  RunKind = "sync"
	RunKindClear RunKind = "clear"
)

// RunHandle identifies one background run.
type RunHandle struct {
	ID        string // UUID assigned at spawn
	Kind      RunKind
	StartedAt time.Time
}

// LogEntry is one line of the run log feed.
type LogEntry struct {
	At      time.Time
	Message string
}
