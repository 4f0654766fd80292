package bounds

import (
	"fmt"
	"math"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// ExtendIndependentEdges grows every seed edge into a maximum biclique with
// independent sides that contains it. One model serves all seeds: arc
// binaries select cross pairs, side labels keep adjacent vertices apart,
// and per seed the edge arc plus its two side labels are pinned to one
// before solving. The returned arc groups are aligned with the seeds and
// run from side zero to side one.
func ExtendIndependentEdges(g *mbcgraph.Graph, seeds []mbcgraph.Edge, slv solver.Interface, opts solver.Options) ([][]mbcgraph.Arc, error) {
	arcs := g.Arcs()
	arcCol := make(map[mbcgraph.Arc]int, len(arcs))
	side := make(map[int][2]int)

	m := solver.NewModel("extend_independent_edges")
	m.Maximize = true
	for _, a := range arcs {
		arcCol[a] = m.AddBinary(1, fmt.Sprintf("x_%d_%d", a.From, a.To))
	}
	for _, v := range g.Nodes() {
		side[v] = [2]int{
			m.AddBinary(0, fmt.Sprintf("y_%d_0", v)),
			m.AddBinary(0, fmt.Sprintf("y_%d_1", v)),
		}
	}
	for _, e := range g.Edges() {
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: side[e.U][0], Val: 1},
			solver.Entry{Col: side[e.V][0], Val: 1})
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: side[e.U][1], Val: 1},
			solver.Entry{Col: side[e.V][1], Val: 1})
	}
	for _, v := range g.Nodes() {
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: side[v][0], Val: 1},
			solver.Entry{Col: side[v][1], Val: 1})
	}
	for _, a := range arcs {
		m.AddRow(math.Inf(-1), 0, "",
			solver.Entry{Col: arcCol[a], Val: 1},
			solver.Entry{Col: side[a.From][0], Val: -1})
		m.AddRow(math.Inf(-1), 0, "",
			solver.Entry{Col: arcCol[a], Val: 1},
			solver.Entry{Col: side[a.To][1], Val: -1})
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: side[a.From][0], Val: 1},
			solver.Entry{Col: side[a.To][1], Val: 1},
			solver.Entry{Col: arcCol[a], Val: -1})
	}

	groups := make([][]mbcgraph.Arc, 0, len(seeds))
	for _, seed := range seeds {
		pinned := []int{
			arcCol[mbcgraph.Arc{From: seed.U, To: seed.V}],
			side[seed.U][0],
			side[seed.V][1],
		}
		for _, c := range pinned {
			m.ColLower[c] = 1
		}
		sol, err := slv.Solve(m, opts)
		if err != nil {
			return nil, fmt.Errorf("Error while extending edge (%d, %d): %v", seed.U, seed.V, err)
		}
		if err := acceptSolution(sol); err != nil {
			return nil, fmt.Errorf("Error while extending edge (%d, %d): %v", seed.U, seed.V, err)
		}
		var group []mbcgraph.Arc
		for _, a := range arcs {
			if sol.Values[arcCol[a]] > 0.5 {
				group = append(group, a)
			}
		}
		groups = append(groups, group)
		for _, c := range pinned {
			m.ColLower[c] = 0
		}
	}
	return groups, nil
}
