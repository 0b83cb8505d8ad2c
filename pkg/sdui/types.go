package sdui

// Lesson kinds reported by the SDUI timetable API.
const (
	KindHoliday = "HOLIDAY"
	KindEvent   = "EVENT"
)

// Lesson oftype values reported by the SDUI timetable API.
// "CANCLED" is the provider's own spelling.
const (
	OftypeCancelled    = "CANCLED"
	OftypeRoomChange   = "BOOKABLE_CHANGE"
	OftypeSubstitution = "SUBSTITUTION"
	OftypeExam         = "EXAM"
)

// Timetable is the payload of GET /v1/timetables/users/{id}/timetable.
type Timetable struct {
	Data struct {
		Lessons []Lesson `json:"lessons"`
	} `json:"data"`
}

// Lesson is one raw timetable record. Every field may be absent;
// absent timestamps decode to zero.
type Lesson struct {
	Kind      string     `json:"kind"`
	Oftype    string     `json:"oftype"`
	BeginsAt  int64      `json:"begins_at"` // epoch seconds
	EndsAt    int64      `json:"ends_at"`   // epoch seconds
	Comment   string     `json:"comment"`
	Meta      *Meta      `json:"meta"`
	Course    *Course    `json:"course"`
	Bookables []Bookable `json:"bookables"`
	Teachers  []Teacher  `json:"teachers"`
}

// Course carries the course metadata of an ordinary lesson.
type Course struct {
	Meta *Meta `json:"meta"`
}

// Meta holds a display name.
type Meta struct {
	Displayname string `json:"displayname"`
}

// Bookable is a bookable resource, usually a room.
type Bookable struct {
	Name string `json:"name"`
}

// Teacher is a teacher reference on a lesson.
type Teacher struct {
	Name string `json:"name"`
}
