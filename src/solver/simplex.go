package solver

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Simplex solves continuous models with the gonum simplex. Integer models
// are rejected with ErrIntegerModel; BranchBound relaxes through it instead.
type Simplex struct{}

func (Simplex) Name() string { return "simplex" }

func (s Simplex) Solve(m *Model, opts Options) (*Solution, error) {
	for _, integer := range m.Integer {
		if integer {
			return nil, ErrIntegerModel
		}
	}
	return solveRelaxation(m)
}

// standardForm shifts every column by its lower bound and collects all
// remaining restrictions as G.y <= h over the shifted nonnegative variables:
// finite upper bounds become singleton rows, each model row contributes one
// row per finite side.
func standardForm(m *Model) (c []float64, g *mat.Dense, h []float64, err error) {
	nVar := m.NumVars()
	c = make([]float64, nVar)
	for j := range c {
		if math.IsInf(m.ColLower[j], -1) {
			return nil, nil, nil, errors.New("columns must have finite lower bounds")
		}
		c[j] = m.ColCosts[j]
		if m.Maximize {
			c[j] = -c[j]
		}
	}

	var rows [][]float64
	addRow := func(coeffs []float64, rhs float64) {
		rows = append(rows, coeffs)
		h = append(h, rhs)
	}

	for j := range m.ColUpper {
		if math.IsInf(m.ColUpper[j], 1) {
			continue
		}
		coeffs := make([]float64, nVar)
		coeffs[j] = 1
		addRow(coeffs, m.ColUpper[j]-m.ColLower[j])
	}
	for i, row := range m.Rows {
		shift := 0.0
		for _, e := range row {
			shift += e.Val * m.ColLower[e.Col]
		}
		if !math.IsInf(m.RowUpper[i], 1) {
			coeffs := make([]float64, nVar)
			for _, e := range row {
				coeffs[e.Col] += e.Val
			}
			addRow(coeffs, m.RowUpper[i]-shift)
		}
		if !math.IsInf(m.RowLower[i], -1) {
			coeffs := make([]float64, nVar)
			for _, e := range row {
				coeffs[e.Col] -= e.Val
			}
			addRow(coeffs, shift-m.RowLower[i])
		}
	}

	if len(rows) == 0 {
		return c, nil, nil, nil
	}
	flat := make([]float64, 0, len(rows)*nVar)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return c, mat.NewDense(len(rows), nVar, flat), h, nil
}

// convertToEqualities rewrites G.y <= h as an equality system with one slack
// variable per row, the form the gonum simplex accepts.
func convertToEqualities(c []float64, g *mat.Dense, h []float64) ([]float64, *mat.Dense, []float64) {
	nVar := len(c)
	nIneq := len(h)

	cNew := make([]float64, nVar+nIneq)
	copy(cNew, c)

	bNew := make([]float64, nIneq)
	copy(bNew, h)

	aNew := mat.NewDense(nIneq, nVar+nIneq, nil)
	aNew.Slice(0, nIneq, 0, nVar).(*mat.Dense).Copy(g)
	for i := 0; i < nIneq; i++ {
		aNew.Set(i, nVar+i, 1)
	}
	return cNew, aNew, bNew
}

// solveRelaxation solves the model with integrality dropped. Infeasible and
// unbounded outcomes come back as statuses.
func solveRelaxation(m *Model) (*Solution, error) {
	c, g, h, err := standardForm(m)
	if err != nil {
		return nil, err
	}

	nVar := m.NumVars()
	x := make([]float64, nVar)
	if g == nil {
		// nothing but lower bounds: each column sits at its bound unless
		// an improving direction is open above it
		for j := range x {
			if c[j] < 0 {
				return &Solution{Status: StatusUnbounded}, nil
			}
			x[j] = m.ColLower[j]
		}
		obj := m.Eval(x)
		return &Solution{Status: StatusOptimal, Objective: obj, Bound: obj, Values: x}, nil
	}

	cNew, aNew, bNew := convertToEqualities(c, g, h)
	_, y, err := lp.Simplex(cNew, aNew, bNew, 0, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &Solution{Status: StatusInfeasible}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &Solution{Status: StatusUnbounded}, nil
	case err != nil:
		return nil, err
	}

	for j := range x {
		x[j] = y[j] + m.ColLower[j]
	}
	obj := m.Eval(x)
	return &Solution{Status: StatusOptimal, Objective: obj, Bound: obj, Values: x}, nil
}
