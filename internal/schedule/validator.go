package schedule

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/classmesh/timetabler/internal/catalog"
)

type ViolationKind string

const (
	ViolationRoomConflict    ViolationKind = "room_conflict"
	ViolationTeacherConflict ViolationKind = "teacher_conflict"
	ViolationCoverageGap     ViolationKind = "coverage_gap"
)

// Violation is one broken structural constraint in a candidate schedule.
// Violations are diagnostics: the caller decides whether to reject or repair.
type Violation struct {
	Kind       ViolationKind
	CourseID   uint64
	TeacherID  uint64
	RoomID     uint64
	TimeSlotID uint64
}

func (v Violation) String() string {
	switch v.Kind {
	case ViolationRoomConflict:
		return fmt.Sprintf("room %v is double-booked in slot %v", v.RoomID, v.TimeSlotID)
	case ViolationTeacherConflict:
		return fmt.Sprintf("teacher %v is double-booked in slot %v", v.TeacherID, v.TimeSlotID)
	case ViolationCoverageGap:
		return fmt.Sprintf("course %v has no active entry", v.CourseID)
	}
	return string(v.Kind)
}

// Validate checks a candidate entry set against the structural constraints,
// independently of how the candidate was produced. Inactive entries are
// ignored. An empty result means the candidate is a valid schedule for the
// given course catalog.
func Validate(entries []Entry, courses []catalog.Course) []Violation {
	active := lo.Filter(entries, func(entry Entry, _ int) bool { return entry.IsActive })
	violations := make([]Violation, 0)

	// Room exclusivity: at most one active entry per (room, slot)
	type roomSlot struct{ room, slot uint64 }
	roomUsage := make(map[roomSlot]int)
	for _, entry := range active {
		key := roomSlot{room: entry.RoomID, slot: entry.TimeSlotID}
		roomUsage[key]++
		if roomUsage[key] == 2 {
			violations = append(violations, Violation{
				Kind:       ViolationRoomConflict,
				RoomID:     entry.RoomID,
				TimeSlotID: entry.TimeSlotID,
			})
		}
	}

	// Teacher exclusivity: at most one active entry per (teacher, slot)
	type teacherSlot struct{ teacher, slot uint64 }
	teacherUsage := make(map[teacherSlot]int)
	for _, entry := range active {
		key := teacherSlot{teacher: entry.TeacherID, slot: entry.TimeSlotID}
		teacherUsage[key]++
		if teacherUsage[key] == 2 {
			violations = append(violations, Violation{
				Kind:       ViolationTeacherConflict,
				TeacherID:  entry.TeacherID,
				TimeSlotID: entry.TimeSlotID,
			})
		}
	}

	// Coverage: every catalog course appears at least once
	scheduled := lo.SliceToMap(active, func(entry Entry) (uint64, bool) { return entry.CourseID, true })
	for _, course := range courses {
		if !scheduled[course.ID] {
			violations = append(violations, Violation{
				Kind:     ViolationCoverageGap,
				CourseID: course.ID,
			})
		}
	}

	return violations
}
