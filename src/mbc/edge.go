package mbc

import (
	"fmt"
	"math"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// Edge is the edge-assignment formulation: a binary y_{e,b} puts edge e
// into slot b, with triangle and crossing-pair rows cutting off edge
// groups that no biclique can hold. Bicliques are recovered from the edge
// groups afterwards.
type Edge struct {
	Params RunParams
}

func NewEdge(p RunParams) *Edge { return &Edge{Params: p} }

func (f *Edge) Name() string { return "edge" }

func (f *Edge) Solve(g *mbcgraph.Graph, slv solver.Interface) (*Result, error) {
	return runFormulation(f.Name(), g, f.Params, slv, func(pr *runPrep, k int) (*solver.Model, func([]float64) Cover) {
		return f.build(g, pr, k)
	})
}

func (f *Edge) BuildModel(g *mbcgraph.Graph, slv solver.Interface) (*solver.Model, error) {
	pr, err := prepareRun(g, f.Params, slv)
	if err != nil {
		return nil, err
	}
	m, _ := f.build(g, pr, pr.k)
	return m, nil
}

func (f *Edge) build(g *mbcgraph.Graph, pr *runPrep, k int) (*solver.Model, func(values []float64) Cover) {
	m := solver.NewModel("edge")
	edges := g.Edges()

	z := make([]int, k)
	for b := range z {
		z[b] = m.AddBinary(1, fmt.Sprintf("z_%d", b))
	}
	y := make(map[mbcgraph.Edge][]int, len(edges))
	for _, e := range edges {
		cols := make([]int, k)
		for b := 0; b < k; b++ {
			cols[b] = m.AddBinary(0, fmt.Sprintf("y_%d_%d_%d", e.U, e.V, b))
		}
		y[e] = cols
	}

	// symmetry break
	for b := 0; b+1 < k; b++ {
		m.AddRow(0, math.Inf(1), "",
			solver.Entry{Col: z[b], Val: 1},
			solver.Entry{Col: z[b+1], Val: -1})
	}
	// coupling and covering
	for _, e := range edges {
		for b := 0; b < k; b++ {
			m.AddRow(math.Inf(-1), 0, "",
				solver.Entry{Col: y[e][b], Val: 1},
				solver.Entry{Col: z[b], Val: -1})
		}
		entries := make([]solver.Entry, k)
		for b := 0; b < k; b++ {
			entries[b] = solver.Entry{Col: y[e][b], Val: 1}
		}
		m.AddRow(1, math.Inf(1), fmt.Sprintf("cover_%d_%d", e.U, e.V), entries...)
	}
	// The triangle and crossing rows carry the biclique structure of the
	// slots; without them an edge group is only a covering class.
	f.addTriangleRows(m, g, y, k)
	f.addConflictRows(m, g, y, k)
	for b := 0; b < pr.lb && b < k; b++ {
		m.ColLower[z[b]] = 1
	}
	for b, e := range pr.indepEdges {
		if b >= k {
			break
		}
		m.ColLower[z[b]] = 1
		m.ColLower[y[e][b]] = 1
	}
	if pr.warmGroups != nil {
		for b, group := range pr.warmGroups {
			if b >= k {
				break
			}
			m.SetStart(z[b], 1)
			for _, e := range group {
				m.SetStart(y[e][b], 1)
			}
		}
	}

	recover := func(values []float64) Cover {
		groups := make([][]mbcgraph.Edge, 0, k)
		for b := 0; b < k; b++ {
			if values[z[b]] < 0.5 {
				continue
			}
			var group []mbcgraph.Edge
			for _, e := range edges {
				if values[y[e][b]] > 0.5 {
					group = append(group, e)
				}
			}
			groups = append(groups, group)
		}
		return CoverFromEdgeGroups(groups)
	}
	return m, recover
}

// addTriangleRows emits one row per triangle and slot: a biclique holds at
// most two edges of any 3-cycle.
func (f *Edge) addTriangleRows(m *solver.Model, g *mbcgraph.Graph, y map[mbcgraph.Edge][]int, k int) {
	seen := make(map[[3]mbcgraph.Edge]bool)
	for _, e := range g.Edges() {
		for _, j := range g.CommonNeighbors(e.U, e.V) {
			tri := [3]mbcgraph.Edge{e, edgeOf(e.U, j), edgeOf(e.V, j)}
			key := tri
			if key[1].U > key[2].U || (key[1].U == key[2].U && key[1].V > key[2].V) {
				key[1], key[2] = key[2], key[1]
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			for b := 0; b < k; b++ {
				m.AddRow(math.Inf(-1), 2, "",
					solver.Entry{Col: y[tri[0]][b], Val: 1},
					solver.Entry{Col: y[tri[1]][b], Val: 1},
					solver.Entry{Col: y[tri[2]][b], Val: 1})
			}
		}
	}
}

// addConflictRows cuts disjoint edge pairs out of a common slot unless the
// connecting edges that would complete a biclique are taken along: for
// edges (u,v) and (c,d), y_uv + y_cd <= 1 + y over the edges from c (and,
// in the twin row, from d) to u and v.
func (f *Edge) addConflictRows(m *solver.Model, g *mbcgraph.Graph, y map[mbcgraph.Edge][]int, k int) {
	edges := g.Edges()
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			e, other := edges[i], edges[j]
			if e.U == other.U || e.U == other.V || e.V == other.U || e.V == other.V {
				continue
			}
			for _, c := range []int{other.U, other.V} {
				var links []mbcgraph.Edge
				if g.HasEdge(c, e.U) {
					links = append(links, edgeOf(c, e.U))
				}
				if g.HasEdge(c, e.V) {
					links = append(links, edgeOf(c, e.V))
				}
				for b := 0; b < k; b++ {
					entries := []solver.Entry{
						{Col: y[e][b], Val: 1},
						{Col: y[other][b], Val: 1},
					}
					for _, l := range links {
						entries = append(entries, solver.Entry{Col: y[l][b], Val: -1})
					}
					m.AddRow(math.Inf(-1), 1, "", entries...)
				}
			}
		}
	}
}
