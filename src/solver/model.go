// Package solver is the boundary between the biclique cover formulations and
// the optimizers that solve them: a solver-agnostic model IR, shared status
// and error taxonomy, and two pure-Go backends (LP simplex and a
// branch-and-bound MIP fallback). The cgo engines live in the highs and
// lpsolve subpackages.
package solver

import (
	"errors"
	"math"
	"slices"
	"time"
)

var (
	ErrInfeasible   = errors.New("model is infeasible")
	ErrUnbounded    = errors.New("model is unbounded")
	ErrNotSolved    = errors.New("model has no solution to report")
	ErrIntegerModel = errors.New("model has integer variables, use a MIP backend")
)

type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusTimeLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusTimeLimit:
		return "time limit"
	}
	return "unknown"
}

// Entry is one nonzero coefficient of a constraint row.
type Entry struct {
	Col int
	Val float64
}

// Model is a mixed-integer linear program in range form: columns with
// bounds, rows with [Lower, Upper] ranges, an optional warm start. Backends
// translate it into their engine's representation.
type Model struct {
	Name     string
	Maximize bool
	Offset   float64

	ColCosts []float64
	ColLower []float64
	ColUpper []float64
	Integer  []bool
	ColNames []string

	RowLower []float64
	RowUpper []float64
	Rows     [][]Entry
	RowNames []string

	Start map[int]float64
}

func NewModel(name string) *Model {
	return &Model{Name: name}
}

func (m *Model) NumVars() int { return len(m.ColCosts) }
func (m *Model) NumRows() int { return len(m.Rows) }

// AddVar appends a column and returns its index. Use math.Inf(1) for a free
// upper bound.
func (m *Model) AddVar(lower, upper, cost float64, integer bool, name string) int {
	m.ColCosts = append(m.ColCosts, cost)
	m.ColLower = append(m.ColLower, lower)
	m.ColUpper = append(m.ColUpper, upper)
	m.Integer = append(m.Integer, integer)
	m.ColNames = append(m.ColNames, name)
	return len(m.ColCosts) - 1
}

// AddBinary appends a 0/1 integer column.
func (m *Model) AddBinary(cost float64, name string) int {
	return m.AddVar(0, 1, cost, true, name)
}

// AddRow appends a range row lower <= a.x <= upper and returns its index.
func (m *Model) AddRow(lower, upper float64, name string, entries ...Entry) int {
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)
	m.Rows = append(m.Rows, entries)
	m.RowNames = append(m.RowNames, name)
	return len(m.Rows) - 1
}

// SetStart records a warm-start value for a column. Backends that cannot
// inject starts ignore them.
func (m *Model) SetStart(col int, val float64) {
	if m.Start == nil {
		m.Start = make(map[int]float64)
	}
	m.Start[col] = val
}

// FixVar pins a column to a value by collapsing its bounds.
func (m *Model) FixVar(col int, val float64) {
	m.ColLower[col] = val
	m.ColUpper[col] = val
}

func (m *Model) Clone() *Model {
	c := &Model{
		Name:     m.Name,
		Maximize: m.Maximize,
		Offset:   m.Offset,
		ColCosts: slices.Clone(m.ColCosts),
		ColLower: slices.Clone(m.ColLower),
		ColUpper: slices.Clone(m.ColUpper),
		Integer:  slices.Clone(m.Integer),
		ColNames: slices.Clone(m.ColNames),
		RowLower: slices.Clone(m.RowLower),
		RowUpper: slices.Clone(m.RowUpper),
		RowNames: slices.Clone(m.RowNames),
		Rows:     make([][]Entry, len(m.Rows)),
	}
	for i, row := range m.Rows {
		c.Rows[i] = slices.Clone(row)
	}
	if m.Start != nil {
		c.Start = make(map[int]float64, len(m.Start))
		for col, val := range m.Start {
			c.Start[col] = val
		}
	}
	return c
}

// Relax returns a continuous copy of the model.
func (m *Model) Relax() *Model {
	c := m.Clone()
	for j := range c.Integer {
		c.Integer[j] = false
	}
	return c
}

const eps = 1e-8

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// Feasible reports whether x satisfies the bounds, rows and integrality of
// the model within tolerance.
func (m *Model) Feasible(x []float64) bool {
	if len(x) != m.NumVars() {
		return false
	}
	for j, v := range x {
		if v < m.ColLower[j]-eps || v > m.ColUpper[j]+eps {
			return false
		}
		if m.Integer[j] && !almostEqual(v, math.Round(v)) {
			return false
		}
	}
	for i, row := range m.Rows {
		total := 0.0
		for _, e := range row {
			total += e.Val * x[e.Col]
		}
		if total < m.RowLower[i]-eps || total > m.RowUpper[i]+eps {
			return false
		}
	}
	return true
}

// Eval returns the objective value of x, offset included.
func (m *Model) Eval(x []float64) float64 {
	total := m.Offset
	for j, v := range x {
		total += m.ColCosts[j] * v
	}
	return total
}

// Solution is what comes back across the solver boundary: the final status,
// the incumbent objective, the best proven bound and the column values.
type Solution struct {
	Status    Status
	Objective float64
	Bound     float64
	Values    []float64
}

type Options struct {
	TimeLimit time.Duration
	Verbose   bool
}

// Deadline converts the time limit into an absolute deadline, zero when no
// limit is set.
func (o Options) Deadline() time.Time {
	if o.TimeLimit <= 0 {
		return time.Time{}
	}
	return time.Now().Add(o.TimeLimit)
}

// Interface is a solve backend. Solve returns an error only on mechanical
// failure; infeasible or unbounded models come back as statuses.
type Interface interface {
	Name() string
	Solve(m *Model, opts Options) (*Solution, error)
}
