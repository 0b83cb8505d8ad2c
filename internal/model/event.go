package model

import "time"

// Category classifies a normalized event and selects its remote display color.
type Category string

const (
	CategoryDefault   Category = "default"
	CategoryExam      Category = "exam"
	CategoryChanged   Category = "changed"
	CategoryCancelled Category = "cancelled"
	CategoryHoliday   Category = "holiday"
	CategoryEvent     Category = "event"
)

// ColorID maps a category onto a Google Calendar event color id.
// Empty string means the calendar's default color.
func (c Category) ColorID() string {
	switch c {
	case CategoryExam:
		return "11" // tomato
	case CategoryChanged:
		return "5" // banana
	case CategoryCancelled:
		return "8" // graphite
	case CategoryHoliday:
		return "2" // sage
	case CategoryEvent:
		return "9" // blueberry
	default:
		return ""
	}
}

// Event is a normalized calendar event descriptor, ready to be inserted
// into the remote calendar. Immutable once built.
type Event struct {
	Summary     string
	Start       time.Time
	End         time.Time
	Location    string // comma-joined room names
	Description string // teacher list + lesson type
	Category    Category
}

// RemoteEventRef identifies an event that already exists in the remote calendar.
type RemoteEventRef struct {
	ID      string
	Summary string
	Start   time.Time
}
