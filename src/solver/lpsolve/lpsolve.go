// Package lpsolve runs models on lp_solve through golp, the second external
// engine.
package lpsolve

import (
	"fmt"
	"math"
	"slices"

	"github.com/draffensperger/golp"

	"minimum_biclique_cover/src/solver"
)

type Solver struct{}

func (Solver) Name() string { return "lpsolve" }

// Solve translates the model for lp_solve. The engine's native column
// bounds are the default [0, inf), so tighter bounds become singleton
// constraint rows; columns with negative lower bounds are not supported.
func (Solver) Solve(m *solver.Model, opts solver.Options) (*solver.Solution, error) {
	numCols := m.NumVars()
	lp := golp.NewLP(0, numCols)

	for j := range m.ColCosts {
		if m.ColNames[j] != "" {
			lp.SetColName(j, m.ColNames[j])
		}
		if m.Integer[j] {
			lp.SetInt(j, true)
		}
		if m.ColLower[j] < 0 {
			return nil, fmt.Errorf("lpsolve backend requires nonnegative columns, column %d has lower bound %g", j, m.ColLower[j])
		}
	}

	for j := range m.ColCosts {
		single := []golp.Entry{{Col: j, Val: 1}}
		if m.ColLower[j] > 0 {
			if err := lp.AddConstraintSparse(slices.Clone(single), golp.GE, m.ColLower[j]); err != nil {
				return nil, err
			}
		}
		if !math.IsInf(m.ColUpper[j], 1) {
			if err := lp.AddConstraintSparse(slices.Clone(single), golp.LE, m.ColUpper[j]); err != nil {
				return nil, err
			}
		}
	}

	for i, row := range m.Rows {
		entries := make([]golp.Entry, len(row))
		for k, e := range row {
			entries[k] = golp.Entry{Col: e.Col, Val: e.Val}
		}
		lower, upper := m.RowLower[i], m.RowUpper[i]
		switch {
		case lower == upper:
			if err := lp.AddConstraintSparse(entries, golp.EQ, lower); err != nil {
				return nil, err
			}
		default:
			if !math.IsInf(upper, 1) {
				if err := lp.AddConstraintSparse(slices.Clone(entries), golp.LE, upper); err != nil {
					return nil, err
				}
			}
			if !math.IsInf(lower, -1) {
				if err := lp.AddConstraintSparse(entries, golp.GE, lower); err != nil {
					return nil, err
				}
			}
		}
	}

	lp.SetObjFn(slices.Clone(m.ColCosts))
	if m.Maximize {
		lp.SetMaximize()
	}

	ret := lp.Solve()
	out := &solver.Solution{Status: mapStatus(ret)}
	if out.Status == solver.StatusOptimal || out.Status == solver.StatusTimeLimit {
		out.Values = lp.Variables()
		out.Objective = lp.Objective() + m.Offset
		out.Bound = out.Objective
	} else {
		out.Objective = math.NaN()
		out.Bound = math.NaN()
	}
	return out, nil
}

func mapStatus(ret golp.SolutionType) solver.Status {
	switch ret {
	case golp.OPTIMAL:
		return solver.StatusOptimal
	case golp.SUBOPTIMAL:
		// lp_solve reports a feasible-but-unproven incumbent this way
		return solver.StatusTimeLimit
	case golp.INFEASIBLE:
		return solver.StatusInfeasible
	case golp.UNBOUNDED:
		return solver.StatusUnbounded
	}
	return solver.StatusUnknown
}
