package bounds

import (
	"fmt"
	"math"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// VertexCoverSolution computes a minimum vertex cover of g and returns the
// selected vertices in ascending order.
func VertexCoverSolution(g *mbcgraph.Graph, slv solver.Interface, opts solver.Options) ([]int, error) {
	nodes := g.Nodes()
	idx := g.NodeIndex()
	m := solver.NewModel("vertex_cover")
	for _, v := range nodes {
		m.AddBinary(1, fmt.Sprintf("x_%d", v))
	}
	for _, e := range g.Edges() {
		m.AddRow(1, math.Inf(1), "",
			solver.Entry{Col: idx[e.U], Val: 1},
			solver.Entry{Col: idx[e.V], Val: 1})
	}
	sol, err := slv.Solve(m, opts)
	if err != nil {
		return nil, fmt.Errorf("Error while solving vertex cover: %v", err)
	}
	if err := acceptSolution(sol); err != nil {
		return nil, fmt.Errorf("Error while solving vertex cover: %v", err)
	}
	var cover []int
	for i, v := range nodes {
		if sol.Values[i] > 0.5 {
			cover = append(cover, v)
		}
	}
	return cover, nil
}
