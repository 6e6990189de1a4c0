package catalog

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// DayOfWeek enumerates the six teaching days of the academic week.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
)

var dayOrder = map[DayOfWeek]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
}

// Ordinal returns the position of the day within the teaching week, or -1 for
// an unknown day. Used to sort weekly grids.
func (d DayOfWeek) Ordinal() int {
	order, ok := dayOrder[d]
	if !ok {
		return -1
	}
	return order
}

type RoomType string

const (
	Classroom  RoomType = "classroom"
	Lab        RoomType = "lab"
	Auditorium RoomType = "auditorium"
	Seminar    RoomType = "seminar"
)

type Course struct {
	ID          uint64 `mapstructure:"id"`
	Code        string `mapstructure:"code"`
	Name        string `mapstructure:"name"`
	Semester    int    `mapstructure:"semester"`
	Credits     int    `mapstructure:"credits"`
	Department  string `mapstructure:"department"`
	MaxStudents int    `mapstructure:"max_students"`
}

type Room struct {
	ID              uint64   `mapstructure:"id"`
	Number          string   `mapstructure:"room_number"`
	Type            RoomType `mapstructure:"room_type"`
	Capacity        int      `mapstructure:"capacity"`
	Building        string   `mapstructure:"building"`
	HasProjector    bool     `mapstructure:"has_projector"`
	HasLabEquipment bool     `mapstructure:"has_lab_equipment"`
}

// TimeSlot is unique per (Day, StartTime). Times are "HH:MM" strings; the
// scheduler never does time arithmetic, it only needs a stable sort key.
type TimeSlot struct {
	ID        uint64    `mapstructure:"id"`
	Day       DayOfWeek `mapstructure:"day_of_week"`
	StartTime string    `mapstructure:"start_time"`
	EndTime   string    `mapstructure:"end_time"`
	Name      string    `mapstructure:"slot_name"`
}

type Teacher struct {
	ID         uint64 `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	Department string `mapstructure:"department"`
}

// User is a row from the user catalog. Only users with the teacher role take
// part in scheduling.
type User struct {
	ID         uint64 `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	Role       string `mapstructure:"role"`
	Department string `mapstructure:"department"`
}

const RoleTeacher = "teacher"

// Snapshot is the read-only catalog state a generation run is built from.
type Snapshot struct {
	Courses   []Course   `mapstructure:"courses"`
	Rooms     []Room     `mapstructure:"rooms"`
	TimeSlots []TimeSlot `mapstructure:"time_slots"`
	Teachers  []Teacher  `mapstructure:"teachers"`
}

// Empty reports whether any of the four entity families is missing entirely,
// which makes scheduling trivially impossible.
func (s Snapshot) Empty() bool {
	return len(s.Courses) == 0 || len(s.Rooms) == 0 || len(s.TimeSlots) == 0 || len(s.Teachers) == 0
}

// TeachersFromUsers filters the user catalog down to scheduling-eligible
// teachers.
func TeachersFromUsers(users []User) []Teacher {
	teachers := lo.Filter(users, func(user User, _ int) bool { return user.Role == RoleTeacher })
	return lo.Map(teachers, func(user User, _ int) Teacher {
		return Teacher{ID: user.ID, Name: user.Name, Department: user.Department}
	})
}

// SnapshotFromJSON reads a catalog snapshot from a JSON file.
func SnapshotFromJSON(file string) (Snapshot, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Snapshot{}, err
	}

	var snapshotJson map[string]any
	if err := json.Unmarshal(bytes, &snapshotJson); err != nil {
		return Snapshot{}, err
	}

	var snapshot Snapshot
	if err := mapstructure.Decode(snapshotJson, &snapshot); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
