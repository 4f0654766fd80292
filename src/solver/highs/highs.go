// Package highs runs models on HiGHS through the lanl binding, the primary
// external MIP engine.
package highs

import (
	"math"
	"slices"
	"strings"

	"github.com/lanl/highs"

	"minimum_biclique_cover/src/solver"
)

// HiGHS treats magnitudes beyond 1e30 as infinite.
const infinity = 1e30

type Solver struct{}

func (Solver) Name() string { return "highs" }

// Solve translates the model into the binding's raw-slice form and maps the
// engine status back. The binding exposes no time-limit or warm-start
// controls, so Options and Model.Start are not forwarded; callers budget
// time between solves instead.
func (Solver) Solve(m *solver.Model, opts solver.Options) (*solver.Solution, error) {
	numCols := m.NumVars()

	lp := new(highs.Model)
	lp.Maximize = m.Maximize
	lp.Offset = m.Offset
	lp.ColCosts = slices.Clone(m.ColCosts)
	lp.ColLower = clamp(m.ColLower)
	lp.ColUpper = clamp(m.ColUpper)
	lp.RowLower = clamp(m.RowLower)
	lp.RowUpper = clamp(m.RowUpper)

	lp.VarTypes = make([]highs.VariableType, numCols)
	for j, integer := range m.Integer {
		if integer {
			lp.VarTypes[j] = highs.IntegerType
		}
	}

	for i, row := range m.Rows {
		for _, e := range row {
			lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: i, Col: e.Col, Val: e.Val})
		}
	}

	sol, err := lp.Solve()
	if err != nil {
		return nil, err
	}

	out := &solver.Solution{Status: mapStatus(sol.Status == highs.Optimal, sol.Status.String())}
	if len(sol.ColumnPrimal) >= numCols {
		out.Values = slices.Clone(sol.ColumnPrimal[:numCols])
		out.Objective = sol.Objective
		out.Bound = sol.Objective
	} else {
		out.Objective = math.NaN()
		out.Bound = math.NaN()
	}
	return out, nil
}

func clamp(vals []float64) []float64 {
	out := slices.Clone(vals)
	for i, v := range out {
		if math.IsInf(v, 1) {
			out[i] = infinity
		} else if math.IsInf(v, -1) {
			out[i] = -infinity
		}
	}
	return out
}

// mapStatus folds the binding's status into the shared taxonomy. Statuses
// other than Optimal are matched on their string form to stay independent
// of the binding's constant set.
func mapStatus(optimal bool, status string) solver.Status {
	if optimal {
		return solver.StatusOptimal
	}
	status = strings.ToLower(status)
	switch {
	case strings.Contains(status, "infeasible"):
		return solver.StatusInfeasible
	case strings.Contains(status, "unbounded"):
		return solver.StatusUnbounded
	case strings.Contains(status, "time"):
		return solver.StatusTimeLimit
	}
	return solver.StatusUnknown
}
