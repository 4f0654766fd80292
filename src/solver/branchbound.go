package solver

import (
	"math"
	"slices"
	"time"
)

// bbNode is an open node of the search tree: tightened column bounds plus
// the relaxation value of the parent, which bounds everything below it.
type bbNode struct {
	colLower  []float64
	colUpper  []float64
	dualBound float64
}

// BranchBound is the pure-Go MIP backend: depth-first branch and bound over
// simplex relaxations. Unlike the cgo engines it enforces Options.TimeLimit
// itself and seeds the incumbent from the model's warm start.
type BranchBound struct{}

func (BranchBound) Name() string { return "branchbound" }

func (BranchBound) Solve(m *Model, opts Options) (*Solution, error) {
	deadline := opts.Deadline()
	sense := 1.0
	if m.Maximize {
		sense = -1
	}

	var incumbent []float64
	incumbentObj := math.Inf(1)
	if m.Start != nil {
		x := startVector(m)
		if m.Feasible(x) {
			incumbent = x
			incumbentObj = sense * m.Eval(x)
		}
	}

	relaxed := m.Relax()
	nodes := NewStack[*bbNode]()
	nodes.Push(&bbNode{
		colLower:  slices.Clone(m.ColLower),
		colUpper:  slices.Clone(m.ColUpper),
		dualBound: math.Inf(-1),
	})

	for nodes.Size() > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return timeLimitSolution(m, sense, incumbent, incumbentObj, nodes), nil
		}

		node := nodes.Pop()
		if node.dualBound >= incumbentObj-eps {
			continue
		}

		relaxed.ColLower = node.colLower
		relaxed.ColUpper = node.colUpper
		sol, err := solveRelaxation(relaxed)
		if err != nil {
			return nil, err
		}
		if sol.Status == StatusUnbounded {
			return &Solution{Status: StatusUnbounded}, nil
		}
		if sol.Status != StatusOptimal {
			continue
		}
		bound := sense * sol.Objective
		if bound >= incumbentObj-eps {
			continue
		}

		branchCol := fractionalColumn(m, sol.Values)
		if branchCol < 0 {
			incumbent = roundIntegers(m, sol.Values)
			incumbentObj = bound
			continue
		}

		down := &bbNode{
			colLower:  node.colLower,
			colUpper:  slices.Clone(node.colUpper),
			dualBound: bound,
		}
		down.colUpper[branchCol] = math.Floor(sol.Values[branchCol])
		up := &bbNode{
			colLower:  slices.Clone(node.colLower),
			colUpper:  node.colUpper,
			dualBound: bound,
		}
		up.colLower[branchCol] = math.Ceil(sol.Values[branchCol])
		nodes.Push(down)
		nodes.Push(up)
	}

	if incumbent == nil {
		return &Solution{Status: StatusInfeasible}, nil
	}
	obj := sense * incumbentObj
	return &Solution{Status: StatusOptimal, Objective: obj, Bound: obj, Values: incumbent}, nil
}

// startVector expands the warm-start map to a full assignment, unset columns
// resting on their lower bounds.
func startVector(m *Model) []float64 {
	x := slices.Clone(m.ColLower)
	for col, val := range m.Start {
		x[col] = val
	}
	return x
}

// fractionalColumn returns the first integer column with a fractional value,
// -1 when the assignment is integral.
func fractionalColumn(m *Model, x []float64) int {
	for j, integer := range m.Integer {
		if integer && !almostEqual(x[j], math.Round(x[j])) {
			return j
		}
	}
	return -1
}

func roundIntegers(m *Model, x []float64) []float64 {
	out := slices.Clone(x)
	for j, integer := range m.Integer {
		if integer {
			out[j] = math.Round(out[j])
		}
	}
	return out
}

// timeLimitSolution drains the open nodes for the tightest bound still
// proven and packages the incumbent, if any.
func timeLimitSolution(m *Model, sense float64, incumbent []float64, incumbentObj float64, nodes *Stack[*bbNode]) *Solution {
	openBound := math.Inf(1)
	for nodes.Size() > 0 {
		if b := nodes.Pop().dualBound; b < openBound {
			openBound = b
		}
	}
	if incumbentObj < openBound {
		openBound = incumbentObj
	}
	sol := &Solution{Status: StatusTimeLimit, Bound: sense * openBound, Objective: math.NaN()}
	if incumbent != nil {
		sol.Objective = sense * incumbentObj
		sol.Values = incumbent
	}
	return sol
}
