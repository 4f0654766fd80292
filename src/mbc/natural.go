package mbc

import (
	"fmt"
	"math"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// Natural is the vertex-labelling formulation: a binary z_b per biclique
// slot, binaries x_{v,b,d} assigning vertices to the two sides and
// continuous arc variables y_{uv,b} linearizing their product. Every edge
// must carry one of its orientations in some active slot, and no slot may
// hold a non-adjacent cross pair.
type Natural struct {
	Params RunParams
}

func NewNatural(p RunParams) *Natural { return &Natural{Params: p} }

func (f *Natural) Name() string { return "natural" }

func (f *Natural) Solve(g *mbcgraph.Graph, slv solver.Interface) (*Result, error) {
	return runFormulation(f.Name(), g, f.Params, slv, func(pr *runPrep, k int) (*solver.Model, func([]float64) Cover) {
		return f.build(g, pr, k)
	})
}

// BuildModel assembles the model at the run's budget without solving it,
// for LP-file export. The bound models still run on slv.
func (f *Natural) BuildModel(g *mbcgraph.Graph, slv solver.Interface) (*solver.Model, error) {
	pr, err := prepareRun(g, f.Params, slv)
	if err != nil {
		return nil, err
	}
	m, _ := f.build(g, pr, pr.k)
	return m, nil
}

func (f *Natural) build(g *mbcgraph.Graph, pr *runPrep, k int) (*solver.Model, func(values []float64) Cover) {
	m := solver.NewModel("natural")
	nodes := g.Nodes()
	arcs := g.Arcs()

	z := make([]int, k)
	for b := range z {
		z[b] = m.AddBinary(1, fmt.Sprintf("z_%d", b))
	}
	x := make(map[int][][2]int, len(nodes))
	for _, v := range nodes {
		cols := make([][2]int, k)
		for b := 0; b < k; b++ {
			cols[b] = [2]int{
				m.AddBinary(0, fmt.Sprintf("x_%d_%d_0", v, b)),
				m.AddBinary(0, fmt.Sprintf("x_%d_%d_1", v, b)),
			}
		}
		x[v] = cols
	}
	y := make(map[mbcgraph.Arc][]int, len(arcs))
	for _, a := range arcs {
		cols := make([]int, k)
		for b := 0; b < k; b++ {
			cols[b] = m.AddVar(0, 1, 0, false, fmt.Sprintf("y_%d_%d_%d", a.From, a.To, b))
		}
		y[a] = cols
	}

	// symmetry break
	for b := 0; b+1 < k; b++ {
		m.AddRow(0, math.Inf(1), "",
			solver.Entry{Col: z[b], Val: 1},
			solver.Entry{Col: z[b+1], Val: -1})
	}
	// coupling and node assignment
	for _, v := range nodes {
		for b := 0; b < k; b++ {
			for d := 0; d < 2; d++ {
				m.AddRow(math.Inf(-1), 0, "",
					solver.Entry{Col: x[v][b][d], Val: 1},
					solver.Entry{Col: z[b], Val: -1})
			}
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: x[v][b][0], Val: 1},
				solver.Entry{Col: x[v][b][1], Val: 1},
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
	// arc linearization y = x0 * x1 on active slots
	for _, a := range arcs {
		for b := 0; b < k; b++ {
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: y[a][b], Val: 1},
				solver.Entry{Col: x[a.From][b][0], Val: -1})
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: y[a][b], Val: 1},
				solver.Entry{Col: x[a.To][b][1], Val: -1})
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: x[a.From][b][0], Val: 1},
				solver.Entry{Col: x[a.To][b][1], Val: 1},
				solver.Entry{Col: z[b], Val: -1},
				solver.Entry{Col: y[a][b], Val: -1})
		}
	}
	// complement exclusion: non-adjacent vertices never face each other
	for _, a := range g.NonAdjacentArcs() {
		for b := 0; b < k; b++ {
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: x[a.From][b][0], Val: 1},
				solver.Entry{Col: x[a.To][b][1], Val: 1},
				solver.Entry{Col: z[b], Val: -1})
		}
	}
	if f.Params.CliqueInequalities {
		f.addCliqueRows(m, g, y, k)
	}
	for b := 0; b < pr.lb && b < k; b++ {
		m.ColLower[z[b]] = 1
	}
	for b, e := range pr.indepEdges {
		if b >= k {
			break
		}
		m.ColLower[x[e.U][b][0]] = 1
		m.ColLower[x[e.V][b][1]] = 1
		m.ColLower[y[mbcgraph.Arc{From: e.U, To: e.V}][b]] = 1
		m.ColUpper[y[mbcgraph.Arc{From: e.V, To: e.U}][b]] = 0
	}
	if pr.warmGroups != nil {
		for b, bc := range CoverFromEdgeGroups(pr.warmGroups) {
			if b >= k {
				break
			}
			m.SetStart(z[b], 1)
			for _, u := range bc.Left {
				m.SetStart(x[u][b][0], 1)
			}
			for _, v := range bc.Right {
				m.SetStart(x[v][b][1], 1)
			}
			for _, u := range bc.Left {
				for _, v := range bc.Right {
					if g.HasEdge(u, v) {
						m.SetStart(y[mbcgraph.Arc{From: u, To: v}][b], 1)
					}
				}
			}
		}
	}

	recover := func(values []float64) Cover {
		var cover Cover
		for b := 0; b < k; b++ {
			if values[z[b]] < 0.5 {
				continue
			}
			var left, right []int
			for _, v := range nodes {
				if values[x[v][b][0]] > 0.5 {
					left = append(left, v)
				}
				if values[x[v][b][1]] > 0.5 {
					right = append(right, v)
				}
			}
			if len(left) > 0 && len(right) > 0 {
				cover = append(cover, Biclique{Left: left, Right: right})
			}
		}
		return cover
	}
	return m, recover
}

// addCliqueRows caps the arcs a slot can take inside any maximal clique: a
// biclique meets a clique of size c in at most floor(c^2/4) edges.
func (f *Natural) addCliqueRows(m *solver.Model, g *mbcgraph.Graph, y map[mbcgraph.Arc][]int, k int) {
	for _, clique := range g.MaximalCliques() {
		c := len(clique)
		if c < 3 {
			continue
		}
		rhs := float64(c*c) / 4
		if c%2 == 1 {
			rhs = float64((c+1)*(c-1)) / 4
		}
		var cliqueArcs []mbcgraph.Arc
		for _, u := range clique {
			for _, v := range clique {
				if u != v && g.HasEdge(u, v) {
					cliqueArcs = append(cliqueArcs, mbcgraph.Arc{From: u, To: v})
				}
			}
		}
		for b := 0; b < k; b++ {
			entries := make([]solver.Entry, len(cliqueArcs))
			for i, a := range cliqueArcs {
				entries[i] = solver.Entry{Col: y[a][b], Val: 1}
			}
			m.AddRow(math.Inf(-1), rhs, "", entries...)
		}
	}
}
