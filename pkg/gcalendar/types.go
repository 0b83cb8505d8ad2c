package gcalendar

import "time"

// InsertEventRequest is the input for creating a Google Calendar event.
type InsertEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	Location    string
	ColorID     string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Europe/Berlin"
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
}
