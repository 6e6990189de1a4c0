package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classmesh/timetabler/internal/catalog"
	"github.com/classmesh/timetabler/internal/model"
)

func TestEntriesFromAssignments(t *testing.T) {
	assignments := []model.Assignment{
		{
			Course:  catalog.Course{ID: 101},
			Room:    catalog.Room{ID: 1},
			Slot:    catalog.TimeSlot{ID: 11},
			Teacher: catalog.Teacher{ID: 7},
		},
	}

	entries := EntriesFromAssignments(testTerm, assignments)

	assert.Equal(t, []Entry{{
		CourseID:     101,
		TeacherID:    7,
		RoomID:       1,
		TimeSlotID:   11,
		AcademicYear: "2025-2026",
		Semester:     1,
		IsActive:     true,
	}}, entries)
}

func TestSameEntrySet(t *testing.T) {
	a := []Entry{
		activeEntry(101, 7, 1, 11),
		activeEntry(102, 8, 2, 11),
	}
	b := []Entry{
		activeEntry(102, 8, 2, 11),
		activeEntry(101, 7, 1, 11),
	}

	// Order does not matter, tuples do.
	assert.True(t, SameEntrySet(a, b))

	b[0].RoomID = 3
	assert.False(t, SameEntrySet(a, b))

	assert.False(t, SameEntrySet(a, a[:1]))
	assert.True(t, SameEntrySet(nil, nil))
}

func TestTermString(t *testing.T) {
	assert.Equal(t, "2025-2026/sem1", testTerm.String())
}
