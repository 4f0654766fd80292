package bounds

import (
	"fmt"
	"math"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// edgesShareBiclique reports whether some biclique contains both edges.
// Edges sharing an endpoint always do (a star around it). Disjoint edges
// (a,b) and (c,d) do exactly when the crossing edges of one of the two
// side assignments exist in g.
func edgesShareBiclique(g *mbcgraph.Graph, e, f mbcgraph.Edge) bool {
	if e.U == f.U || e.U == f.V || e.V == f.U || e.V == f.V {
		return true
	}
	if g.HasEdge(e.U, f.U) && g.HasEdge(e.V, f.V) {
		return true
	}
	return g.HasEdge(e.U, f.V) && g.HasEdge(e.V, f.U)
}

// IsIndependentEdgeSet reports whether no two edges of the set fit in a
// common biclique. The size of any such set is a lower bound on the
// biclique cover number.
func IsIndependentEdgeSet(g *mbcgraph.Graph, edges []mbcgraph.Edge) bool {
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if edgesShareBiclique(g, edges[i], edges[j]) {
				return false
			}
		}
	}
	return true
}

// IndependentEdges computes a maximum independent edge set: one binary per
// edge, a matching row per vertex and a pairwise exclusion per disjoint
// co-coverable edge pair.
func IndependentEdges(g *mbcgraph.Graph, slv solver.Interface, opts solver.Options) ([]mbcgraph.Edge, error) {
	edges := g.Edges()
	m := solver.NewModel("independent_edges")
	m.Maximize = true
	for _, e := range edges {
		m.AddBinary(1, fmt.Sprintf("y_%d_%d", e.U, e.V))
	}
	byVertex := make(map[int][]solver.Entry)
	for i, e := range edges {
		byVertex[e.U] = append(byVertex[e.U], solver.Entry{Col: i, Val: 1})
		byVertex[e.V] = append(byVertex[e.V], solver.Entry{Col: i, Val: 1})
	}
	for _, v := range g.Nodes() {
		if len(byVertex[v]) > 1 {
			m.AddRow(math.Inf(-1), 1, fmt.Sprintf("matching_%d", v), byVertex[v]...)
		}
	}
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if sharesEndpoint(edges[i], edges[j]) {
				continue
			}
			if edgesShareBiclique(g, edges[i], edges[j]) {
				m.AddRow(math.Inf(-1), 1, "",
					solver.Entry{Col: i, Val: 1},
					solver.Entry{Col: j, Val: 1})
			}
		}
	}
	sol, err := slv.Solve(m, opts)
	if err != nil {
		return nil, fmt.Errorf("Error while solving independent edges: %v", err)
	}
	if err := acceptSolution(sol); err != nil {
		return nil, fmt.Errorf("Error while solving independent edges: %v", err)
	}
	var selected []mbcgraph.Edge
	for i, e := range edges {
		if sol.Values[i] > 0.5 {
			selected = append(selected, e)
		}
	}
	return selected, nil
}

func sharesEndpoint(e, f mbcgraph.Edge) bool {
	return e.U == f.U || e.U == f.V || e.V == f.U || e.V == f.V
}
