// Package model translates a catalog snapshot into a boolean constraint
// model. One decision variable exists per (course, room, slot, teacher)
// combination, so model construction iterates the full cartesian product of
// the catalog entities; that product, not the clause emission, is the
// dominant cost driver for build time.
package model

import (
	"github.com/classmesh/timetabler/internal/catalog"
	"github.com/classmesh/timetabler/internal/sat"
)

// Options control optional constraint families. The structural families
// (coverage, room exclusivity, teacher exclusivity) are always emitted.
type Options struct {
	// EnforceSubjectMatch forbids assigning a teacher to a course from another
	// department. Off by default: the catalog data carries departments but the
	// generation logic historically never restricted on them, so turning this
	// on can flip feasible catalogs to infeasible.
	EnforceSubjectMatch bool
}

// Assignment is one decoded decision: the course is taught by the teacher in
// the room during the slot.
type Assignment struct {
	Course  catalog.Course
	Room    catalog.Room
	Slot    catalog.TimeSlot
	Teacher catalog.Teacher
}

// Model is a catalog snapshot compiled to a SAT instance, plus the indexer
// needed to map solver literals back to catalog entities.
type Model struct {
	Snapshot catalog.Snapshot
	Options  Options
	Indexer  Indexer
	Instance sat.SAT
}

// Build compiles the snapshot into a constraint model. No validation beyond
// what the clause families themselves imply happens here; an empty snapshot
// simply yields a model with zero variables.
func Build(snapshot catalog.Snapshot, options Options) Model {
	builder := &modelBuilder{
		snapshot: snapshot,
		options:  options,
		courses:  uint64(len(snapshot.Courses)),
		rooms:    uint64(len(snapshot.Rooms)),
		slots:    uint64(len(snapshot.TimeSlots)),
		teachers: uint64(len(snapshot.Teachers)),
	}
	builder.indexer = NewIndexer(builder.courses, builder.rooms, builder.slots, builder.teachers)

	instance := sat.SAT{
		Variables: builder.courses * builder.rooms * builder.slots * builder.teachers,
		Clauses:   [][]int{},
	}
	instance.Clauses = append(instance.Clauses, builder.coverageClauses()...)
	instance.Clauses = append(instance.Clauses, builder.roomExclusivityClauses()...)
	instance.Clauses = append(instance.Clauses, builder.teacherExclusivityClauses()...)
	if options.EnforceSubjectMatch {
		instance.Clauses = append(instance.Clauses, builder.subjectMatchClauses()...)
	}

	return Model{
		Snapshot: snapshot,
		Options:  options,
		Indexer:  builder.indexer,
		Instance: instance,
	}
}

// Decode maps the positive literals of a solution back to assignments.
func (m Model) Decode(solution sat.SATSolution) []Assignment {
	assignments := make([]Assignment, 0)
	for _, literal := range solution {
		if literal <= 0 || uint64(literal) > m.Instance.Variables {
			continue
		}

		course, room, slot, teacher := m.Indexer.Attributes(uint64(literal))
		assignments = append(assignments, Assignment{
			Course:  m.Snapshot.Courses[course],
			Room:    m.Snapshot.Rooms[room],
			Slot:    m.Snapshot.TimeSlots[slot],
			Teacher: m.Snapshot.Teachers[teacher],
		})
	}
	return assignments
}

type modelBuilder struct {
	snapshot catalog.Snapshot
	options  Options
	indexer  Indexer

	courses  uint64
	rooms    uint64
	slots    uint64
	teachers uint64
}

// coverageClauses: every course appears in at least one assignment. One
// clause per course listing all of its variables.
func (b *modelBuilder) coverageClauses() [][]int {
	clauses := make([][]int, 0, b.courses)

	for course := range b.courses {
		clause := make([]int, 0, b.rooms*b.slots*b.teachers)
		for room := range b.rooms {
			for slot := range b.slots {
				for teacher := range b.teachers {
					clause = append(clause, int(b.indexer.Index(course, room, slot, teacher)))
				}
			}
		}
		clauses = append(clauses, clause)
	}

	return clauses
}

// roomExclusivityClauses: a room hosts at most one session per slot. Encoded
// as pairwise negations over all (course, teacher) variables of each
// (room, slot) pair.
func (b *modelBuilder) roomExclusivityClauses() [][]int {
	clauses := make([][]int, 0)

	for room := range b.rooms {
		for slot := range b.slots {
			variables := make([]uint64, 0, b.courses*b.teachers)
			for course := range b.courses {
				for teacher := range b.teachers {
					variables = append(variables, b.indexer.Index(course, room, slot, teacher))
				}
			}
			clauses = append(clauses, pairwiseAtMostOne(variables)...)
		}
	}

	return clauses
}

// teacherExclusivityClauses: a teacher gives at most one session per slot.
func (b *modelBuilder) teacherExclusivityClauses() [][]int {
	clauses := make([][]int, 0)

	for teacher := range b.teachers {
		for slot := range b.slots {
			variables := make([]uint64, 0, b.courses*b.rooms)
			for course := range b.courses {
				for room := range b.rooms {
					variables = append(variables, b.indexer.Index(course, room, slot, teacher))
				}
			}
			clauses = append(clauses, pairwiseAtMostOne(variables)...)
		}
	}

	return clauses
}

// subjectMatchClauses: unit negations for every variable pairing a teacher
// with a course outside their department.
func (b *modelBuilder) subjectMatchClauses() [][]int {
	clauses := make([][]int, 0)

	for course := range b.courses {
		for teacher := range b.teachers {
			if b.snapshot.Teachers[teacher].Department == b.snapshot.Courses[course].Department {
				continue
			}

			for room := range b.rooms {
				for slot := range b.slots {
					index := b.indexer.Index(course, room, slot, teacher)
					clauses = append(clauses, []int{-int(index)})
				}
			}
		}
	}

	return clauses
}

func pairwiseAtMostOne(variables []uint64) [][]int {
	clauses := make([][]int, 0, len(variables)*(len(variables)-1)/2)
	for i := range len(variables) - 1 {
		for j := i + 1; j < len(variables); j++ {
			clauses = append(clauses, []int{-int(variables[i]), -int(variables[j])})
		}
	}
	return clauses
}
