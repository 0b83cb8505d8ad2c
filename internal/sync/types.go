package sync

import "timetable-calendar-sync/internal/model"

// StartInput is the input for StartSync and StartClear.
type StartInput struct {
	Range model.DateRange
}

// StatusOutput is a snapshot of the engine state for status pollers.
type StatusOutput struct {
	Running     bool
	Run         *model.RunHandle // nil when idle
	RecentLogs  []string
	TotalLogged int // lines ever appended, lets pollers detect new output
}
