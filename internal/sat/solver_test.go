package sat

import (
	"context"
	"log"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unsatisfiableInstance = SAT{
	Variables: 2,
	Clauses:   [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}},
}

func TestGophersatSatisfiable(t *testing.T) {
	solver := NewGophersatSolver()
	unsatisfiableCount := 0

	for range 10 {
		literals := uint64(rand.IntN(100) + 1)
		clauses := rand.IntN(200) + 1
		instance := GenerateSATInstance(literals, clauses)

		solution, err := solver.Solve(context.Background(), instance)
		if err != nil {
			t.Errorf("an error occurred while solving a SAT instance: %v", err)
		}

		if solution == nil {
			unsatisfiableCount++
			continue
		}

		if !AssertSATSolution(instance, solution) {
			t.Error("Wrong answer")
		}
	}

	log.Printf("Unsatisfiable instances: %v", unsatisfiableCount)
}

func TestGophersatUnsatisfiable(t *testing.T) {
	solver := NewGophersatSolver()

	solution, err := solver.Solve(context.Background(), unsatisfiableInstance)

	require.NoError(t, err)
	assert.Nil(t, solution)
}

func TestDPLLSatisfiable(t *testing.T) {
	solver := NewDPLLSolver()
	unsatisfiableCount := 0

	for range 10 {
		literals := uint64(rand.IntN(30) + 1)
		clauses := rand.IntN(60) + 1
		instance := GenerateSATInstance(literals, clauses)

		solution, err := solver.Solve(context.Background(), instance)
		if err != nil {
			t.Errorf("an error occurred while solving a SAT instance: %v", err)
		}

		if solution == nil {
			unsatisfiableCount++
			continue
		}

		if !AssertSATSolution(instance, solution) {
			t.Error("Wrong answer")
		}
	}

	log.Printf("Unsatisfiable instances: %v", unsatisfiableCount)
}

func TestDPLLUnsatisfiable(t *testing.T) {
	solver := NewDPLLSolver()

	solution, err := solver.Solve(context.Background(), unsatisfiableInstance)

	require.NoError(t, err)
	assert.Nil(t, solution)
}

// Both backends must agree on satisfiability for the same instances.
func TestBackendsAgree(t *testing.T) {
	gophersat := NewGophersatSolver()
	dpll := NewDPLLSolver()

	for range 10 {
		literals := uint64(rand.IntN(20) + 1)
		clauses := rand.IntN(40) + 1
		instance := GenerateSATInstance(literals, clauses)

		gophersatSolution, err := gophersat.Solve(context.Background(), instance)
		require.NoError(t, err)
		dpllSolution, err := dpll.Solve(context.Background(), instance)
		require.NoError(t, err)

		assert.Equal(t, gophersatSolution == nil, dpllSolution == nil)
	}
}

func TestDPLLInterrupted(t *testing.T) {
	solver := NewDPLLSolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	instance := GenerateSATInstance(20, 40)
	solution, err := solver.Solve(ctx, instance)

	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Nil(t, solution)
}

func TestSolverByName(t *testing.T) {
	for _, name := range SolverNames() {
		solver, err := SolverByName(name)
		require.NoError(t, err)
		assert.NotNil(t, solver)
	}

	_, err := SolverByName("kissat")
	assert.Error(t, err)
}

func TestToDIMACS(t *testing.T) {
	instance := SAT{
		Variables: 3,
		Clauses:   [][]int{{1, -2}, {2, 3}},
	}

	assert.Equal(t, "p cnf 3 2\n1 -2 0\n2 3 0\n", instance.ToDIMACS())
}
