package schedule

import (
	"fmt"
	"time"

	"github.com/classmesh/timetabler/internal/model"
)

// Term identifies an academic term: one schedule is active per term at a time.
type Term struct {
	AcademicYear string
	Semester     int
}

func (t Term) String() string {
	return fmt.Sprintf("%v/sem%v", t.AcademicYear, t.Semester)
}

// Entry is one published timetable row: the course is taught by the teacher
// in the room during the slot, for the given term. Superseded entries are
// kept under their generation with IsActive false, never deleted.
type Entry struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	CourseID     uint64 `gorm:"column:course_id;index:idx_entry_course"`
	TeacherID    uint64 `gorm:"column:teacher_id;index:idx_entry_teacher"`
	RoomID       uint64 `gorm:"column:room_id;index:idx_entry_room"`
	TimeSlotID   uint64 `gorm:"column:time_slot_id"`
	AcademicYear string `gorm:"column:academic_year;size:20"`
	Semester     int    `gorm:"column:semester"`
	IsActive     bool   `gorm:"column:is_active"`
	GenerationID string `gorm:"column:generation_id;size:36;index:idx_entry_generation"`
}

func (Entry) TableName() string {
	return "timetable_entries"
}

// Key is the identity of an entry within its term, used for set comparison
// between generations.
type Key struct {
	CourseID   uint64
	TeacherID  uint64
	RoomID     uint64
	TimeSlotID uint64
}

func (e Entry) Key() Key {
	return Key{
		CourseID:   e.CourseID,
		TeacherID:  e.TeacherID,
		RoomID:     e.RoomID,
		TimeSlotID: e.TimeSlotID,
	}
}

// Generation is one solver-derived schedule for a term. At most one
// generation per term is active at a time; flipping the active pointer is the
// publish step.
type Generation struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Year      string    `gorm:"column:academic_year;size:20;index:idx_generation_term"`
	Semester  int       `gorm:"column:semester;index:idx_generation_term"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Entries   []Entry   `gorm:"foreignKey:GenerationID;references:ID"`
}

func (Generation) TableName() string {
	return "schedule_generations"
}

func (g Generation) Term() Term {
	return Term{AcademicYear: g.Year, Semester: g.Semester}
}

// EntriesFromAssignments converts solver assignments into active entries for
// the term.
func EntriesFromAssignments(term Term, assignments []model.Assignment) []Entry {
	entries := make([]Entry, 0, len(assignments))
	for _, assignment := range assignments {
		entries = append(entries, Entry{
			CourseID:     assignment.Course.ID,
			TeacherID:    assignment.Teacher.ID,
			RoomID:       assignment.Room.ID,
			TimeSlotID:   assignment.Slot.ID,
			AcademicYear: term.AcademicYear,
			Semester:     term.Semester,
			IsActive:     true,
		})
	}
	return entries
}

// SameEntrySet reports whether two entry slices cover the same assignment
// tuples, irrespective of order.
func SameEntrySet(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}

	keys := make(map[Key]int, len(a))
	for _, entry := range a {
		keys[entry.Key()]++
	}
	for _, entry := range b {
		keys[entry.Key()]--
		if keys[entry.Key()] < 0 {
			return false
		}
	}
	return true
}
