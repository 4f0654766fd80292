package mbc

import (
	"fmt"
	"math"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// Extended is the formulation over maximal independent sets: the binaries
// w_{s,b,d} assemble each slot side as a union of sets, vertex memberships
// x_{v,b,d} follow the picked sets, p strips vertices claimed by both
// sides and y linearizes the cross product. With Relaxed everything but w
// turns continuous, giving the formulation's LP bound.
type Extended struct {
	Params RunParams
}

func NewExtended(p RunParams) *Extended { return &Extended{Params: p} }

func (f *Extended) Name() string { return "extended" }

func (f *Extended) Solve(g *mbcgraph.Graph, slv solver.Interface) (*Result, error) {
	return runFormulation(f.Name(), g, f.Params, slv, func(pr *runPrep, k int) (*solver.Model, func([]float64) Cover) {
		return f.build(g, pr, k)
	})
}

func (f *Extended) BuildModel(g *mbcgraph.Graph, slv solver.Interface) (*solver.Model, error) {
	pr, err := prepareRun(g, f.Params, slv)
	if err != nil {
		return nil, err
	}
	m, _ := f.build(g, pr, pr.k)
	return m, nil
}

func (f *Extended) build(g *mbcgraph.Graph, pr *runPrep, k int) (*solver.Model, func(values []float64) Cover) {
	m := solver.NewModel("extended")
	nodes := g.Nodes()
	arcs := g.Arcs()
	sets := g.MaximalIndependentSets()
	integer := !f.Params.Relaxed

	z := make([]int, k)
	for b := range z {
		z[b] = m.AddVar(0, 1, 1, integer, fmt.Sprintf("z_%d", b))
	}
	w := make([][][2]int, len(sets))
	for s := range sets {
		w[s] = make([][2]int, k)
		for b := 0; b < k; b++ {
			w[s][b] = [2]int{
				m.AddBinary(0, fmt.Sprintf("w_%d_%d_0", s, b)),
				m.AddBinary(0, fmt.Sprintf("w_%d_%d_1", s, b)),
			}
		}
	}
	x := make(map[int][][2]int, len(nodes))
	p := make(map[int][][2]int, len(nodes))
	for _, v := range nodes {
		xc := make([][2]int, k)
		pc := make([][2]int, k)
		for b := 0; b < k; b++ {
			xc[b] = [2]int{
				m.AddVar(0, 1, 0, integer, fmt.Sprintf("x_%d_%d_0", v, b)),
				m.AddVar(0, 1, 0, integer, fmt.Sprintf("x_%d_%d_1", v, b)),
			}
			pc[b] = [2]int{
				m.AddVar(0, 1, 0, integer, fmt.Sprintf("p_%d_%d_0", v, b)),
				m.AddVar(0, 1, 0, integer, fmt.Sprintf("p_%d_%d_1", v, b)),
			}
		}
		x[v] = xc
		p[v] = pc
	}
	y := make(map[mbcgraph.Arc][]int, len(arcs))
	for _, a := range arcs {
		cols := make([]int, k)
		for b := 0; b < k; b++ {
			cols[b] = m.AddVar(0, 1, 0, integer, fmt.Sprintf("y_%d_%d_%d", a.From, a.To, b))
		}
		y[a] = cols
	}

	containing := make(map[int][]int, len(nodes))
	for s, set := range sets {
		for _, v := range set {
			containing[v] = append(containing[v], s)
		}
	}

	// a set serves at most one side per slot, memberships follow the sets
	for s, set := range sets {
		for b := 0; b < k; b++ {
			m.AddRow(math.Inf(-1), 1, "",
				solver.Entry{Col: w[s][b][0], Val: 1},
				solver.Entry{Col: w[s][b][1], Val: 1})
			for d := 0; d < 2; d++ {
				for _, v := range set {
					m.AddRow(math.Inf(-1), 0, "",
						solver.Entry{Col: w[s][b][d], Val: 1},
						solver.Entry{Col: x[v][b][d], Val: -1})
				}
			}
		}
	}
	for _, v := range nodes {
		for b := 0; b < k; b++ {
			for d := 0; d < 2; d++ {
				entries := []solver.Entry{{Col: x[v][b][d], Val: 1}}
				for _, s := range containing[v] {
					entries = append(entries, solver.Entry{Col: w[s][b][d], Val: -1})
				}
				m.AddRow(math.Inf(-1), 0, "", entries...)
				// p = x_d * (1 - x_{1-d})
				m.AddRow(math.Inf(-1), 0, "",
					solver.Entry{Col: p[v][b][d], Val: 1},
					solver.Entry{Col: x[v][b][d], Val: -1})
				m.AddRow(math.Inf(-1), 1, "",
					solver.Entry{Col: p[v][b][d], Val: 1},
					solver.Entry{Col: x[v][b][1-d], Val: 1})
				m.AddRow(math.Inf(-1), 0, "",
					solver.Entry{Col: x[v][b][d], Val: 1},
					solver.Entry{Col: x[v][b][1-d], Val: -1},
					solver.Entry{Col: p[v][b][d], Val: -1})
			}
		}
	}
	// y = p0 * p1 and coupling
	for _, a := range arcs {
		for b := 0; b < k; b++ {
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: y[a][b], Val: 1},
				solver.Entry{Col: p[a.From][b][0], Val: -1})
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: y[a][b], Val: 1},
				solver.Entry{Col: p[a.To][b][1], Val: -1})
			m.AddRow(math.Inf(-1), 1, "",
				solver.Entry{Col: p[a.From][b][0], Val: 1},
				solver.Entry{Col: p[a.To][b][1], Val: 1},
				solver.Entry{Col: y[a][b], Val: -1})
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: y[a][b], Val: 1},
				solver.Entry{Col: z[b], Val: -1})
		}
	}
	// covering
	for _, e := range g.Edges() {
		entries := make([]solver.Entry, 0, 2*k)
		for b := 0; b < k; b++ {
			entries = append(entries,
				solver.Entry{Col: y[mbcgraph.Arc{From: e.U, To: e.V}][b], Val: 1},
				solver.Entry{Col: y[mbcgraph.Arc{From: e.V, To: e.U}][b], Val: 1})
		}
		m.AddRow(1, math.Inf(1), fmt.Sprintf("cover_%d_%d", e.U, e.V), entries...)
	}
	// complement exclusion on the stripped memberships
	for _, a := range g.NonAdjacentArcs() {
		for b := 0; b < k; b++ {
			m.AddRow(math.Inf(-1), 1, "",
				solver.Entry{Col: p[a.From][b][0], Val: 1},
				solver.Entry{Col: p[a.To][b][1], Val: 1})
		}
	}
	// symmetry break
	for b := 0; b+1 < k; b++ {
		m.AddRow(0, math.Inf(1), "",
			solver.Entry{Col: z[b], Val: 1},
			solver.Entry{Col: z[b+1], Val: -1})
	}
	for b := 0; b < pr.lb && b < k; b++ {
		m.ColLower[z[b]] = 1
	}

	recover := func(values []float64) Cover {
		if f.Params.Relaxed {
			return nil
		}
		groups := make([][]mbcgraph.Edge, 0, k)
		for b := 0; b < k; b++ {
			if values[z[b]] < 0.5 {
				continue
			}
			var group []mbcgraph.Edge
			for _, a := range arcs {
				if a.From < a.To && (values[y[a][b]] > 0.5 || values[y[mbcgraph.Arc{From: a.To, To: a.From}][b]] > 0.5) {
					group = append(group, mbcgraph.Edge{U: a.From, V: a.To})
				}
			}
			groups = append(groups, group)
		}
		return CoverFromEdgeGroups(groups)
	}
	return m, recover
}
