package bounds

import (
	"fmt"
	"math"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// MaxClique computes the clique number of g as a maximum stable set of the
// complement: one binary per vertex, a pairwise exclusion per non-adjacent
// pair.
func MaxClique(g *mbcgraph.Graph, slv solver.Interface, opts solver.Options) (int, error) {
	idx := g.NodeIndex()
	m := solver.NewModel("max_clique")
	m.Maximize = true
	for _, v := range g.Nodes() {
		m.AddBinary(1, fmt.Sprintf("x_%d", v))
	}
	for _, e := range g.Complement().Edges() {
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: idx[e.U], Val: 1},
			solver.Entry{Col: idx[e.V], Val: 1})
	}
	sol, err := slv.Solve(m, opts)
	if err != nil {
		return 0, fmt.Errorf("Error while solving maximum clique: %v", err)
	}
	if err := acceptSolution(sol); err != nil {
		return 0, fmt.Errorf("Error while solving maximum clique: %v", err)
	}
	return int(math.Round(sol.Objective)), nil
}
