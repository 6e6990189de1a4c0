package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classmesh/timetabler/internal/catalog"
)

var validatorCourses = []catalog.Course{
	{ID: 101, Code: "CS101"},
	{ID: 102, Code: "MA201"},
}

func activeEntry(course, teacher, room, slot uint64) Entry {
	return Entry{
		CourseID:     course,
		TeacherID:    teacher,
		RoomID:       room,
		TimeSlotID:   slot,
		AcademicYear: "2025-2026",
		Semester:     1,
		IsActive:     true,
	}
}

func TestValidateValidSchedule(t *testing.T) {
	entries := []Entry{
		activeEntry(101, 7, 1, 11),
		activeEntry(102, 8, 2, 11),
	}

	assert.Empty(t, Validate(entries, validatorCourses))
}

func TestValidateRoomConflict(t *testing.T) {
	// Two entries with identical (room, slot) must yield exactly one
	// room-exclusivity violation.
	entries := []Entry{
		activeEntry(101, 7, 1, 11),
		activeEntry(102, 8, 1, 11),
	}

	violations := Validate(entries, validatorCourses)

	assert.Len(t, violations, 1)
	assert.Equal(t, ViolationRoomConflict, violations[0].Kind)
	assert.Equal(t, uint64(1), violations[0].RoomID)
	assert.Equal(t, uint64(11), violations[0].TimeSlotID)
}

func TestValidateTeacherConflict(t *testing.T) {
	entries := []Entry{
		activeEntry(101, 7, 1, 11),
		activeEntry(102, 7, 2, 11),
	}

	violations := Validate(entries, validatorCourses)

	assert.Len(t, violations, 1)
	assert.Equal(t, ViolationTeacherConflict, violations[0].Kind)
	assert.Equal(t, uint64(7), violations[0].TeacherID)
}

func TestValidateCoverageGap(t *testing.T) {
	entries := []Entry{
		activeEntry(101, 7, 1, 11),
	}

	violations := Validate(entries, validatorCourses)

	assert.Len(t, violations, 1)
	assert.Equal(t, ViolationCoverageGap, violations[0].Kind)
	assert.Equal(t, uint64(102), violations[0].CourseID)
}

func TestValidateIgnoresInactiveEntries(t *testing.T) {
	inactive := activeEntry(102, 8, 1, 11)
	inactive.IsActive = false

	entries := []Entry{
		activeEntry(101, 7, 1, 11),
		inactive, // would be a room conflict if it counted
	}

	violations := Validate(entries, validatorCourses)

	// Only the coverage gap for the inactive course remains.
	assert.Len(t, violations, 1)
	assert.Equal(t, ViolationCoverageGap, violations[0].Kind)
}

func TestValidateEmptyCandidate(t *testing.T) {
	violations := Validate(nil, validatorCourses)

	assert.Len(t, violations, 2)
	for _, violation := range violations {
		assert.Equal(t, ViolationCoverageGap, violation.Kind)
	}
}
