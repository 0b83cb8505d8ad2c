package usecase_test

import (
	"strings"
	"testing"
	"time"

	"timetable-calendar-sync/internal/model"
	"timetable-calendar-sync/internal/sync/usecase"
	"timetable-calendar-sync/pkg/sdui"
)

func lessonAt(begin, end int64) sdui.Lesson {
	return sdui.Lesson{BeginsAt: begin, EndsAt: end}
}

func TestNormalizeSkipsRecordsWithoutTimestamps(t *testing.T) {
	lessons := []sdui.Lesson{
		lessonAt(0, 1700000000),
		lessonAt(1700000000, 0),
		lessonAt(1700000000, 1700003600),
	}

	events := usecase.NormalizeLessons(lessons, time.UTC)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestNormalizeExamLesson(t *testing.T) {
	lesson := sdui.Lesson{
		Kind:     "LESSON",
		Oftype:   sdui.OftypeExam,
		BeginsAt: 1700000000,
		EndsAt:   1700003600,
		Course:   &sdui.Course{Meta: &sdui.Meta{Displayname: "10B_Chemistry"}},
		Teachers: []sdui.Teacher{{Name: "Dr.X"}},
	}

	events := usecase.NormalizeLessons([]sdui.Lesson{lesson}, time.UTC)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	ev := events[0]
	if ev.Summary != "📝 Exam: Chemistry" {
		t.Errorf("summary = %q", ev.Summary)
	}
	if ev.Category != model.CategoryExam {
		t.Errorf("category = %q, want exam", ev.Category)
	}
	if !strings.Contains(ev.Description, "Teacher: Dr.X") {
		t.Errorf("description %q missing teacher", ev.Description)
	}
	if !strings.Contains(ev.Description, "Type: LESSON") {
		t.Errorf("description %q missing type", ev.Description)
	}
}

func TestNormalizeSubjectTruncationIdempotent(t *testing.T) {
	cases := []struct {
		displayname string
		want        string
	}{
		{"MATH", "MATH"},
		{"7A_MATH", "MATH"},
		{"2025_7A_MATH", "MATH"},
	}

	for _, tc := range cases {
		lesson := sdui.Lesson{
			BeginsAt: 1700000000,
			EndsAt:   1700003600,
			Course:   &sdui.Course{Meta: &sdui.Meta{Displayname: tc.displayname}},
		}
		events := usecase.NormalizeLessons([]sdui.Lesson{lesson}, time.UTC)
		if len(events) != 1 {
			t.Fatalf("%s: got %d events", tc.displayname, len(events))
		}
		if events[0].Summary != tc.want {
			t.Errorf("%s: summary = %q, want %q", tc.displayname, events[0].Summary, tc.want)
		}
	}
}

func TestNormalizePrefixAndCategoryByOftype(t *testing.T) {
	cases := []struct {
		oftype   string
		prefix   string
		category model.Category
	}{
		{sdui.OftypeCancelled, "❌ Cancelled: ", model.CategoryCancelled},
		{sdui.OftypeRoomChange, "⚠️ Room: ", model.CategoryChanged},
		{sdui.OftypeSubstitution, "🔄 Sub: ", model.CategoryChanged},
		{sdui.OftypeExam, "📝 Exam: ", model.CategoryExam},
		{"", "", model.CategoryDefault},
		{"SOMETHING_NEW", "", model.CategoryDefault},
	}

	for _, tc := range cases {
		lesson := sdui.Lesson{
			Oftype:   tc.oftype,
			BeginsAt: 1700000000,
			EndsAt:   1700003600,
			Course:   &sdui.Course{Meta: &sdui.Meta{Displayname: "10B_Chemistry"}},
		}
		events := usecase.NormalizeLessons([]sdui.Lesson{lesson}, time.UTC)
		if got, want := events[0].Summary, tc.prefix+"Chemistry"; got != want {
			t.Errorf("oftype %q: summary = %q, want %q", tc.oftype, got, want)
		}
		if events[0].Category != tc.category {
			t.Errorf("oftype %q: category = %q, want %q", tc.oftype, events[0].Category, tc.category)
		}
	}
}

func TestNormalizeHolidayAndEvent(t *testing.T) {
	holiday := sdui.Lesson{
		Kind:     sdui.KindHoliday,
		BeginsAt: 1700000000,
		EndsAt:   1700003600,
		Meta:     &sdui.Meta{Displayname: "Herbstferien"},
		Comment:  "school closed",
	}
	generic := sdui.Lesson{
		Kind:     sdui.KindEvent,
		BeginsAt: 1700000000,
		EndsAt:   1700003600,
		Comment:  "Sports day",
	}
	unnamed := sdui.Lesson{
		Kind:     sdui.KindEvent,
		BeginsAt: 1700000000,
		EndsAt:   1700003600,
	}

	events := usecase.NormalizeLessons([]sdui.Lesson{holiday, generic, unnamed}, time.UTC)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	if events[0].Summary != "🏖️ Herbstferien" || events[0].Category != model.CategoryHoliday {
		t.Errorf("holiday = %q / %q", events[0].Summary, events[0].Category)
	}
	if events[0].Location != "" {
		t.Errorf("holiday location = %q, want empty", events[0].Location)
	}
	if !strings.Contains(events[0].Description, "Type: HOLIDAY") ||
		!strings.Contains(events[0].Description, "Comment: school closed") {
		t.Errorf("holiday description = %q", events[0].Description)
	}

	if events[1].Summary != "📅 Sports day" || events[1].Category != model.CategoryEvent {
		t.Errorf("event = %q / %q", events[1].Summary, events[1].Category)
	}
	if events[2].Summary != "📅 Event" {
		t.Errorf("unnamed event summary = %q", events[2].Summary)
	}
}

func TestNormalizeRoomsAndTeachers(t *testing.T) {
	lesson := sdui.Lesson{
		BeginsAt:  1700000000,
		EndsAt:    1700003600,
		Course:    &sdui.Course{Meta: &sdui.Meta{Displayname: "9C_Physik"}},
		Bookables: []sdui.Bookable{{Name: "R101"}, {}, {Name: "R102"}},
		Teachers:  []sdui.Teacher{{Name: "Meyer"}, {Name: "Schulz"}},
	}

	events := usecase.NormalizeLessons([]sdui.Lesson{lesson}, time.UTC)
	ev := events[0]
	if ev.Location != "R101, R102" {
		t.Errorf("location = %q, want %q", ev.Location, "R101, R102")
	}
	if !strings.Contains(ev.Description, "Teacher: Meyer, Schulz") {
		t.Errorf("description = %q", ev.Description)
	}
}

func TestNormalizeConvertsEpochToZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	lesson := sdui.Lesson{
		BeginsAt: 1700000000, // 2023-11-14 22:13:20 UTC
		EndsAt:   1700003600,
		Course:   &sdui.Course{Meta: &sdui.Meta{Displayname: "MATH"}},
	}

	events := usecase.NormalizeLessons([]sdui.Lesson{lesson}, berlin)
	if got := events[0].Start.Location(); got != berlin {
		t.Errorf("start location = %v, want Europe/Berlin", got)
	}
	if got := events[0].Start.Hour(); got != 23 { // UTC+1 in November
		t.Errorf("start hour = %d, want 23", got)
	}
}
