package sat

import (
	"context"
)

type dpllSolver struct{}

// NewDPLLSolver returns a plain DPLL backtracking backend with unit
// propagation. It has no learning and no heuristics beyond first-unassigned
// branching, so it only suits small instances, but it is dependency-free and
// fully deterministic, which makes it the backend of choice for tests.
func NewDPLLSolver() SATSolver {
	return &dpllSolver{}
}

func (s *dpllSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	search := &dpllSearch{
		ctx:        ctx,
		clauses:    instance.Clauses,
		assignment: make([]int8, instance.Variables+1),
	}

	satisfiable, err := search.solve()
	if err != nil {
		return nil, err
	} else if !satisfiable {
		return nil, nil
	}

	solution := make(SATSolution, 0, instance.Variables)
	for variable := uint64(1); variable <= instance.Variables; variable++ {
		literal := int(variable)
		if search.assignment[variable] < 0 {
			literal = -literal
		}
		solution = append(solution, literal)
	}
	return solution, nil
}

type dpllSearch struct {
	ctx        context.Context
	clauses    [][]int
	assignment []int8 // indexed by variable, 0 = unassigned
}

func (s *dpllSearch) solve() (bool, error) {
	if s.ctx.Err() != nil {
		return false, ErrInterrupted
	}

	trail := make([]int, 0)
	if !s.propagate(&trail) {
		s.undo(trail)
		return false, nil
	}

	variable := s.firstUnassigned()
	if variable == 0 {
		return true, nil
	}

	for _, phase := range []int8{1, -1} {
		branch := make([]int, 0)
		s.assign(variable, phase, &branch)

		satisfiable, err := s.solve()
		if err != nil {
			return false, err
		} else if satisfiable {
			return true, nil
		}

		s.undo(branch)
	}

	s.undo(trail)
	return false, nil
}

// propagate applies unit propagation until fixpoint. Returns false on an
// empty (conflicting) clause; assignments made on the way are recorded on the
// trail so the caller can undo them.
func (s *dpllSearch) propagate(trail *[]int) bool {
	for changed := true; changed; {
		changed = false

		for _, clause := range s.clauses {
			satisfied := false
			unassigned := 0
			unit := 0

			for _, literal := range clause {
				switch s.value(literal) {
				case 1:
					satisfied = true
				case 0:
					unassigned++
					unit = literal
				}
				if satisfied {
					break
				}
			}

			if satisfied {
				continue
			} else if unassigned == 0 {
				return false
			} else if unassigned == 1 {
				phase := int8(1)
				variable := unit
				if unit < 0 {
					phase = -1
					variable = -unit
				}
				s.assign(variable, phase, trail)
				changed = true
			}
		}
	}
	return true
}

// value reports the literal's truth under the current assignment: 1 true,
// -1 false, 0 unassigned.
func (s *dpllSearch) value(literal int) int8 {
	variable := literal
	if literal < 0 {
		variable = -literal
	}
	assigned := s.assignment[variable]
	if assigned == 0 {
		return 0
	}
	if (literal > 0) == (assigned > 0) {
		return 1
	}
	return -1
}

func (s *dpllSearch) assign(variable int, phase int8, trail *[]int) {
	s.assignment[variable] = phase
	*trail = append(*trail, variable)
}

func (s *dpllSearch) undo(trail []int) {
	for _, variable := range trail {
		s.assignment[variable] = 0
	}
}

func (s *dpllSearch) firstUnassigned() int {
	for variable := 1; variable < len(s.assignment); variable++ {
		if s.assignment[variable] == 0 {
			return variable
		}
	}
	return 0
}
