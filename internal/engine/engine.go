// Package engine runs a compiled constraint model through a SAT backend under
// a wall-clock budget. The engine is a pure function of the model: it never
// touches persisted schedule state.
package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/classmesh/timetabler/internal/model"
	"github.com/classmesh/timetabler/internal/sat"
)

// DefaultTimeBudget bounds a generation run's search time unless the caller
// picks another budget.
const DefaultTimeBudget = 30 * time.Second

type Status string

const (
	// StatusFeasible: a conflict-free assignment was found.
	StatusFeasible Status = "feasible"
	// StatusInfeasible: no assignment satisfies the structural constraints.
	StatusInfeasible Status = "infeasible"
	// StatusTimedOut: the budget ran out with neither a solution nor an
	// infeasibility proof. Nothing may be published.
	StatusTimedOut Status = "timed_out"
	// StatusEmptyCatalog: at least one entity family is empty, so the run is
	// immediately infeasible without touching the solver.
	StatusEmptyCatalog Status = "empty_catalog"
)

// Result reports the outcome of one solve. Assignments is non-nil only for
// StatusFeasible.
type Result struct {
	Status      Status
	Assignments []model.Assignment
	Elapsed     time.Duration
	Variables   uint64
	Clauses     int
}

type Engine struct {
	solver sat.SATSolver
	budget time.Duration
	logger *zap.Logger
}

func New(solver sat.SATSolver, budget time.Duration, logger *zap.Logger) *Engine {
	if budget <= 0 {
		budget = DefaultTimeBudget
	}
	return &Engine{
		solver: solver,
		budget: budget,
		logger: logger,
	}
}

// Solve searches the model for a feasible assignment within the engine's
// budget. Timeouts and infeasibility are statuses, not errors; the error
// return is reserved for backend failures.
func (e *Engine) Solve(ctx context.Context, m model.Model) (Result, error) {
	result := Result{
		Variables: m.Instance.Variables,
		Clauses:   len(m.Instance.Clauses),
	}

	if m.Snapshot.Empty() {
		result.Status = StatusEmptyCatalog
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()

	started := time.Now()
	solution, err := e.solver.Solve(ctx, m.Instance)
	result.Elapsed = time.Since(started)

	if errors.Is(err, sat.ErrInterrupted) {
		e.logger.Warn("solver ran out of budget",
			zap.Duration("budget", e.budget),
			zap.Uint64("variables", result.Variables),
			zap.Int("clauses", result.Clauses))
		result.Status = StatusTimedOut
		return result, nil
	} else if err != nil {
		return result, err
	}

	if solution == nil {
		result.Status = StatusInfeasible
		return result, nil
	}

	result.Status = StatusFeasible
	result.Assignments = m.Decode(solution)
	e.logger.Info("feasible assignment found",
		zap.Int("assignments", len(result.Assignments)),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}
