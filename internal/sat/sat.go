package sat

import (
	"fmt"
	"strings"
)

// SATSolution holds one literal per variable: i+1 if variable i+1 is true,
// -(i+1) otherwise.
type SATSolution []int

type SAT struct {
	Variables uint64
	Clauses   [][]int
}

// ToDIMACS renders the instance in the DIMACS-CNF format understood by every
// off-the-shelf SAT solver. Kept as a debugging escape hatch: dumping a
// problematic model lets it be replayed against an external solver.
func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}
