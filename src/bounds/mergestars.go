package bounds

import (
	"gopkg.in/dnaeon/go-priorityqueue.v1"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// MergeStars covers g with the stars of a minimum vertex cover, then merges
// star pairs whose centers sit at distance two and whose neighborhoods nest.
// The group count is an upper bound on the biclique cover number.
func MergeStars(g *mbcgraph.Graph, slv solver.Interface, opts solver.Options) ([][]mbcgraph.Edge, error) {
	cover, err := VertexCoverSolution(g, slv, opts)
	if err != nil {
		return nil, err
	}
	return mergeStarsFromCover(g, cover), nil
}

// mergeStarsFromCover runs the merge walk over the distance-two center
// pairs, smallest degree sums first. When one center's neighborhood is
// contained in the other's, the smaller star joins the larger center as a
// two-row biclique and leaves the cover.
func mergeStarsFromCover(g *mbcgraph.Graph, cover []int) [][]mbcgraph.Edge {
	inCover := make(map[int]bool, len(cover))
	for _, v := range cover {
		inCover[v] = true
	}

	pq := priorityqueue.New[mbcgraph.Edge, float64](priorityqueue.MinHeap)
	scale := float64(g.NumNodes()*g.NumNodes() + 1)
	rank := 0.0
	for _, e := range g.Power2().Edges() {
		if g.HasEdge(e.U, e.V) {
			continue
		}
		pq.Put(e, float64(g.Degree(e.U)+g.Degree(e.V))*scale+rank)
		rank++
	}

	var groups [][]mbcgraph.Edge
	for pq.Len() > 0 {
		pair := pq.Get().Value
		u, v := pair.U, pair.V
		if !inCover[u] || !inCover[v] {
			continue
		}
		if g.NeighborSet(u).IsSubset(g.NeighborSet(v)) {
			groups = append(groups, absorbedStar(g, u, v))
			inCover[u] = false
		}
		if g.NeighborSet(v).IsSubset(g.NeighborSet(u)) {
			groups = append(groups, absorbedStar(g, v, u))
			inCover[v] = false
		}
	}
	for _, c := range cover {
		if inCover[c] {
			groups = append(groups, starEdges(g, c))
		}
	}
	return groups
}

// absorbedStar builds the biclique with centers u and v on one side and
// N(u) on the other, valid whenever N(u) is contained in N(v).
func absorbedStar(g *mbcgraph.Graph, u, v int) []mbcgraph.Edge {
	var edges []mbcgraph.Edge
	for _, q := range g.Neighbors(u) {
		edges = append(edges, canonicalEdge(u, q), canonicalEdge(v, q))
	}
	return edges
}

func starEdges(g *mbcgraph.Graph, v int) []mbcgraph.Edge {
	var edges []mbcgraph.Edge
	for _, q := range g.Neighbors(v) {
		edges = append(edges, canonicalEdge(v, q))
	}
	return edges
}
