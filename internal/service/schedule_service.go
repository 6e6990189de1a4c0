package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/classmesh/timetabler/internal/catalog"
	"github.com/classmesh/timetabler/internal/engine"
	"github.com/classmesh/timetabler/internal/model"
	"github.com/classmesh/timetabler/internal/schedule"
)

var (
	// ErrEmptyCatalog: the catalog lacks courses, rooms, slots or teachers.
	// Terminal for the run; retrying without catalog changes cannot help.
	ErrEmptyCatalog = errors.New("catalog has no courses, rooms, time slots or teachers")

	// ErrInfeasible: no conflict-free assignment satisfies the structural
	// constraints. Terminal for the run.
	ErrInfeasible = errors.New("no conflict-free schedule exists for the catalog")

	// ErrTimedOut: the time budget ran out before a verdict. Retrying with a
	// larger budget is the caller's call.
	ErrTimedOut = errors.New("time budget exhausted before the solver reached a verdict")
)

// GenerationReport is the structured outcome of one generation run.
type GenerationReport struct {
	Published    bool
	EntryCount   int
	GenerationID string
	Reason       engine.Status // set when Published is false
	Variables    uint64
	Clauses      int
}

// GridItem is one scheduled session resolved against catalog entities.
type GridItem struct {
	Slot    catalog.TimeSlot
	Course  catalog.Course
	Room    catalog.Room
	Teacher catalog.Teacher
}

// WeeklyGrid groups a term's active sessions by teaching day, each day sorted
// by slot start time.
type WeeklyGrid map[catalog.DayOfWeek][]GridItem

// ScheduleService is the scheduler's invocation surface. Authorization is the
// caller's concern.
type ScheduleService interface {
	// Generate regenerates the term's schedule from the current catalog
	// snapshot and publishes it atomically. On Infeasible, TimedOut or
	// EmptyCatalog nothing is published and the previously active schedule,
	// if any, stays in effect.
	Generate(ctx context.Context, term schedule.Term) (GenerationReport, error)

	// WeeklyGrid resolves the term's active schedule for display.
	WeeklyGrid(ctx context.Context, term schedule.Term) (WeeklyGrid, error)

	// TeacherSchedule returns the teacher's active entries for the term.
	TeacherSchedule(ctx context.Context, term schedule.Term, teacherID uint64) ([]schedule.Entry, error)

	// RoomSchedule returns the room's active entries for the term.
	RoomSchedule(ctx context.Context, term schedule.Term, roomID uint64) ([]schedule.Entry, error)

	// ValidateCandidate checks a manually edited entry set against the
	// structural constraints, without involving the solver.
	ValidateCandidate(ctx context.Context, candidate []schedule.Entry) ([]schedule.Violation, error)
}

type scheduleService struct {
	source       catalog.Source
	store        schedule.Store
	engine       *engine.Engine
	materializer *schedule.Materializer
	options      model.Options
	logger       *zap.Logger
}

func NewScheduleService(
	source catalog.Source,
	store schedule.Store,
	eng *engine.Engine,
	options model.Options,
	logger *zap.Logger,
) ScheduleService {
	return &scheduleService{
		source:       source,
		store:        store,
		engine:       eng,
		materializer: schedule.NewMaterializer(store, logger),
		options:      options,
		logger:       logger,
	}
}

func (s *scheduleService) Generate(ctx context.Context, term schedule.Term) (GenerationReport, error) {
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return GenerationReport{}, fmt.Errorf("reading catalog snapshot: %w", err)
	}

	m := model.Build(snapshot, s.options)
	s.logger.Info("constraint model built",
		zap.String("term", term.String()),
		zap.Uint64("variables", m.Instance.Variables),
		zap.Int("clauses", len(m.Instance.Clauses)))

	result, err := s.engine.Solve(ctx, m)
	if err != nil {
		return GenerationReport{}, fmt.Errorf("solving constraint model: %w", err)
	}

	report := GenerationReport{
		Reason:    result.Status,
		Variables: result.Variables,
		Clauses:   result.Clauses,
	}
	switch result.Status {
	case engine.StatusEmptyCatalog:
		return report, ErrEmptyCatalog
	case engine.StatusInfeasible:
		return report, ErrInfeasible
	case engine.StatusTimedOut:
		return report, ErrTimedOut
	}

	// Sanity-check the solver's output with the same oracle manual edits go
	// through before anything is published.
	candidate := schedule.EntriesFromAssignments(term, result.Assignments)
	if violations := schedule.Validate(candidate, snapshot.Courses); len(violations) > 0 {
		return report, fmt.Errorf("solver output failed validation: %v", violations[0])
	}

	generation, err := s.materializer.Publish(ctx, term, result.Assignments)
	if err != nil {
		return report, err
	}

	report.Published = true
	report.Reason = ""
	report.EntryCount = len(generation.Entries)
	report.GenerationID = generation.ID
	return report, nil
}

func (s *scheduleService) WeeklyGrid(ctx context.Context, term schedule.Term) (WeeklyGrid, error) {
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading catalog snapshot: %w", err)
	}

	entries, err := s.store.ActiveEntries(ctx, term)
	if err != nil {
		return nil, err
	}

	courses := lo.KeyBy(snapshot.Courses, func(course catalog.Course) uint64 { return course.ID })
	rooms := lo.KeyBy(snapshot.Rooms, func(room catalog.Room) uint64 { return room.ID })
	slots := lo.KeyBy(snapshot.TimeSlots, func(slot catalog.TimeSlot) uint64 { return slot.ID })
	teachers := lo.KeyBy(snapshot.Teachers, func(teacher catalog.Teacher) uint64 { return teacher.ID })

	grid := make(WeeklyGrid)
	for _, entry := range entries {
		slot, ok := slots[entry.TimeSlotID]
		if !ok {
			// Entry predates a catalog edit that removed its slot; it can
			// still be listed per teacher or room, just not on the grid.
			s.logger.Warn("active entry references unknown time slot",
				zap.Uint64("time_slot_id", entry.TimeSlotID),
				zap.Uint64("course_id", entry.CourseID))
			continue
		}

		grid[slot.Day] = append(grid[slot.Day], GridItem{
			Slot:    slot,
			Course:  courses[entry.CourseID],
			Room:    rooms[entry.RoomID],
			Teacher: teachers[entry.TeacherID],
		})
	}

	for day := range grid {
		sort.Slice(grid[day], func(i, j int) bool {
			if grid[day][i].Slot.StartTime != grid[day][j].Slot.StartTime {
				return grid[day][i].Slot.StartTime < grid[day][j].Slot.StartTime
			}
			return grid[day][i].Room.Number < grid[day][j].Room.Number
		})
	}
	return grid, nil
}

func (s *scheduleService) TeacherSchedule(ctx context.Context, term schedule.Term, teacherID uint64) ([]schedule.Entry, error) {
	return s.store.EntriesByTeacher(ctx, term, teacherID)
}

func (s *scheduleService) RoomSchedule(ctx context.Context, term schedule.Term, roomID uint64) ([]schedule.Entry, error) {
	return s.store.EntriesByRoom(ctx, term, roomID)
}

func (s *scheduleService) ValidateCandidate(ctx context.Context, candidate []schedule.Entry) ([]schedule.Violation, error) {
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading catalog snapshot: %w", err)
	}
	return schedule.Validate(candidate, snapshot.Courses), nil
}
