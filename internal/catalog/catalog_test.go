package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFromJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{
		"courses": [
			{"id": 101, "code": "CS101", "name": "Intro to CS", "semester": 1, "credits": 3, "department": "CS", "max_students": 60}
		],
		"rooms": [
			{"id": 1, "room_number": "A-101", "room_type": "classroom", "capacity": 60, "building": "Main", "has_projector": true, "has_lab_equipment": false}
		],
		"time_slots": [
			{"id": 11, "day_of_week": "monday", "start_time": "09:00", "end_time": "10:00", "slot_name": "P1"}
		],
		"teachers": [
			{"id": 7, "name": "Ada", "department": "CS"}
		]
	}`
	require.NoError(t, os.WriteFile(file, []byte(payload), 0666))

	snapshot, err := SnapshotFromJSON(file)
	require.NoError(t, err)

	require.Len(t, snapshot.Courses, 1)
	assert.Equal(t, "CS101", snapshot.Courses[0].Code)
	assert.Equal(t, 60, snapshot.Courses[0].MaxStudents)

	require.Len(t, snapshot.Rooms, 1)
	assert.Equal(t, Classroom, snapshot.Rooms[0].Type)
	assert.True(t, snapshot.Rooms[0].HasProjector)

	require.Len(t, snapshot.TimeSlots, 1)
	assert.Equal(t, Monday, snapshot.TimeSlots[0].Day)
	assert.Equal(t, "P1", snapshot.TimeSlots[0].Name)

	require.Len(t, snapshot.Teachers, 1)
	assert.Equal(t, uint64(7), snapshot.Teachers[0].ID)

	assert.False(t, snapshot.Empty())
}

func TestSnapshotFromJSONMissingFile(t *testing.T) {
	_, err := SnapshotFromJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestSnapshotEmpty(t *testing.T) {
	snapshot := Snapshot{
		Courses:   []Course{{ID: 101}},
		Rooms:     []Room{{ID: 1}},
		TimeSlots: []TimeSlot{{ID: 11}},
	}

	// No teachers: the snapshot cannot be scheduled.
	assert.True(t, snapshot.Empty())

	snapshot.Teachers = []Teacher{{ID: 7}}
	assert.False(t, snapshot.Empty())
}

func TestTeachersFromUsers(t *testing.T) {
	users := []User{
		{ID: 1, Name: "Ada", Role: RoleTeacher, Department: "CS"},
		{ID: 2, Name: "Sam", Role: "student"},
		{ID: 3, Name: "Pat", Role: "admin"},
		{ID: 4, Name: "Emmy", Role: RoleTeacher, Department: "Math"},
	}

	teachers := TeachersFromUsers(users)

	require.Len(t, teachers, 2)
	assert.Equal(t, uint64(1), teachers[0].ID)
	assert.Equal(t, "Math", teachers[1].Department)
}

func TestDayOrdinal(t *testing.T) {
	assert.Equal(t, 0, Monday.Ordinal())
	assert.Equal(t, 5, Saturday.Ordinal())
	assert.Equal(t, -1, DayOfWeek("sunday").Ordinal())
}
