package sat

import (
	"context"
	"errors"
	"fmt"
)

// ErrInterrupted is returned when the context expires before the solver can
// reach a verdict. It is distinct from unsatisfiability: an interrupted run
// proves nothing about the instance.
var ErrInterrupted = errors.New("solver interrupted before reaching a verdict")

// SATSolver solves a boolean satisfiability instance. A nil solution with a
// nil error means the instance is unsatisfiable. Implementations must honor
// context cancellation by returning ErrInterrupted.
type SATSolver interface {
	Solve(ctx context.Context, instance SAT) (SATSolution, error)
}

var solvers = map[string]func() SATSolver{
	"gophersat": NewGophersatSolver,
	"dpll":      NewDPLLSolver,
}

// SolverByName returns the solver backend registered under name.
func SolverByName(name string) (SATSolver, error) {
	factory, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%v is not a known solver backend", name)
	}
	return factory(), nil
}

// SolverNames lists the registered backend names.
func SolverNames() []string {
	names := make([]string, 0, len(solvers))
	for name := range solvers {
		names = append(names, name)
	}
	return names
}
