package sat

import (
	"context"

	"github.com/crillab/gophersat/solver"
)

type gophersatSolver struct{}

// NewGophersatSolver returns a backend built on the gophersat CDCL solver. It
// runs fully in-process, which is what makes wall-clock budgets enforceable
// without killing child processes.
func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (s *gophersatSolver) Solve(ctx context.Context, instance SAT) (SATSolution, error) {
	problem := solver.ParseSlice(instance.Clauses)
	engine := solver.New(problem)

	// Relay context cancellation to gophersat's stop channel.
	stop := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			close(stop)
		case <-done:
		}
	}()

	result := engine.Optimal(nil, stop)
	switch result.Status {
	case solver.Unsat:
		return nil, nil
	case solver.Indet:
		return nil, ErrInterrupted
	}

	model := engine.Model()
	solution := make(SATSolution, 0, instance.Variables)
	for i := uint64(0); i < instance.Variables && i < uint64(len(model)); i++ {
		literal := int(i + 1)
		if !model[i] {
			literal = -literal
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
