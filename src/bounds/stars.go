package bounds

import (
	"fmt"
	"math"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// DirectedStars packs vertex-disjoint stars no two of which fit in a common
// biclique and returns their count. Roots maximize, every arc leaves a
// root, every vertex belongs to at most one star, and crossing arcs between
// co-coverable edge pairs exclude each other.
func DirectedStars(g *mbcgraph.Graph, slv solver.Interface, opts solver.Options) (int, error) {
	nodes := g.Nodes()
	idx := g.NodeIndex()
	arcs := g.Arcs()
	arcCol := make(map[mbcgraph.Arc]int, len(arcs))

	m := solver.NewModel("directed_stars")
	m.Maximize = true
	for _, v := range nodes {
		m.AddBinary(1, fmt.Sprintf("r_%d", v))
	}
	for _, a := range arcs {
		arcCol[a] = m.AddBinary(0, fmt.Sprintf("y_%d_%d", a.From, a.To))
	}

	for _, v := range nodes {
		in := []solver.Entry{{Col: idx[v], Val: 1}}
		out := []solver.Entry{{Col: idx[v], Val: 1}}
		for _, u := range g.Neighbors(v) {
			in = append(in, solver.Entry{Col: arcCol[mbcgraph.Arc{From: u, To: v}], Val: 1})
			out = append(out, solver.Entry{Col: arcCol[mbcgraph.Arc{From: v, To: u}], Val: -1})
		}
		m.AddRow(math.Inf(-1), 1, fmt.Sprintf("membership_%d", v), in...)
		m.AddRow(math.Inf(-1), 0, fmt.Sprintf("root_out_%d", v), out...)
	}
	for _, e := range g.Edges() {
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: idx[e.U], Val: 1},
			solver.Entry{Col: idx[e.V], Val: 1})
	}
	for _, a := range arcs {
		m.AddRow(math.Inf(-1), 0, "",
			solver.Entry{Col: arcCol[a], Val: 1},
			solver.Entry{Col: idx[a.From], Val: -1})
	}
	edges := g.Edges()
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if sharesEndpoint(edges[i], edges[j]) {
				continue
			}
			if !edgesShareBiclique(g, edges[i], edges[j]) {
				continue
			}
			m.AddRow(math.Inf(-1), 1, "",
				solver.Entry{Col: arcCol[mbcgraph.Arc{From: edges[i].U, To: edges[i].V}], Val: 1},
				solver.Entry{Col: arcCol[mbcgraph.Arc{From: edges[i].V, To: edges[i].U}], Val: 1},
				solver.Entry{Col: arcCol[mbcgraph.Arc{From: edges[j].U, To: edges[j].V}], Val: 1},
				solver.Entry{Col: arcCol[mbcgraph.Arc{From: edges[j].V, To: edges[j].U}], Val: 1})
		}
	}
	sol, err := slv.Solve(m, opts)
	if err != nil {
		return 0, fmt.Errorf("Error while solving directed stars: %v", err)
	}
	if err := acceptSolution(sol); err != nil {
		return 0, fmt.Errorf("Error while solving directed stars: %v", err)
	}
	return int(math.Round(sol.Objective)), nil
}
