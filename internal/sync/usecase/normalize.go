package usecase

import (
	"strings"
	"time"

	"timetable-calendar-sync/internal/model"
	"timetable-calendar-sync/pkg/sdui"
)

// Summary prefix per lesson oftype. Unknown oftypes get no prefix.
var oftypePrefix = map[string]string{
	sdui.OftypeCancelled:    "❌ Cancelled: ",
	sdui.OftypeRoomChange:   "⚠️ Room: ",
	sdui.OftypeSubstitution: "🔄 Sub: ",
	sdui.OftypeExam:         "📝 Exam: ",
}

var oftypeCategory = map[string]model.Category{
	sdui.OftypeCancelled:    model.CategoryCancelled,
	sdui.OftypeRoomChange:   model.CategoryChanged,
	sdui.OftypeSubstitution: model.CategoryChanged,
	sdui.OftypeExam:         model.CategoryExam,
}

// NormalizeLessons turns raw lessons into calendar event descriptors.
// Total: malformed records are skipped, never reported as errors.
func NormalizeLessons(lessons []sdui.Lesson, loc *time.Location) []model.Event {
	events := make([]model.Event, 0, len(lessons))
	for _, lesson := range lessons {
		if lesson.BeginsAt == 0 || lesson.EndsAt == 0 {
			continue
		}

		event := model.Event{
			Start: time.Unix(lesson.BeginsAt, 0).In(loc),
			End:   time.Unix(lesson.EndsAt, 0).In(loc),
		}

		switch lesson.Kind {
		case sdui.KindHoliday, sdui.KindEvent:
			subject := ""
			if lesson.Meta != nil {
				subject = lesson.Meta.Displayname
			}
			if subject == "" {
				subject = lesson.Comment
			}
			if subject == "" {
				subject = "Event"
			}

			if lesson.Kind == sdui.KindHoliday {
				event.Summary = "🏖️ " + subject
				event.Category = model.CategoryHoliday
			} else {
				event.Summary = "📅 " + subject
				event.Category = model.CategoryEvent
			}
			event.Description = "Type: " + lesson.Kind + "\nComment: " + lesson.Comment

		default:
			event.Summary = oftypePrefix[lesson.Oftype] + subjectName(lesson)
			event.Location = joinRooms(lesson.Bookables)
			event.Description = "Teacher: " + joinTeachers(lesson.Teachers) +
				"\nType: " + kindOrOftype(lesson)
			event.Category = categoryOf(lesson.Oftype)
		}

		events = append(events, event)
	}
	return events
}

// subjectName extracts the display name of an ordinary lesson. Display names
// come prefixed with a class code ("10B_Chemistry"); only the segment after
// the last underscore is kept. Idempotent on already-truncated names.
func subjectName(lesson sdui.Lesson) string {
	name := "Unknown"
	if lesson.Course != nil && lesson.Course.Meta != nil && lesson.Course.Meta.Displayname != "" {
		name = lesson.Course.Meta.Displayname
	}
	if idx := strings.LastIndex(name, "_"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// joinRooms joins bookable names with a comma. Entries without a name are
// skipped silently.
func joinRooms(bookables []sdui.Bookable) string {
	names := make([]string, 0, len(bookables))
	for _, b := range bookables {
		if b.Name != "" {
			names = append(names, b.Name)
		}
	}
	return strings.Join(names, ", ")
}

func joinTeachers(teachers []sdui.Teacher) string {
	names := make([]string, 0, len(teachers))
	for _, t := range teachers {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	return strings.Join(names, ", ")
}

func kindOrOftype(lesson sdui.Lesson) string {
	if lesson.Kind != "" {
		return lesson.Kind
	}
	return lesson.Oftype
}

func categoryOf(oftype string) model.Category {
	if cat, ok := oftypeCategory[oftype]; ok {
		return cat
	}
	return model.CategoryDefault
}
