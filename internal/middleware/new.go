package middleware

import (
	"timetable-calendar-sync/pkg/log"
)

// Middleware bundles the cross-cutting gin handlers.
type Middleware struct {
	l log.Logger
}

func New(l log.Logger) Middleware {
	return Middleware{l: l}
}
