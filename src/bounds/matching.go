package bounds

import (
	"sort"

	"minimum_biclique_cover/src/mbcgraph"
)

// Matching returns a maximal matching of g, grown greedily over the sorted
// edge list and then improved by augmenting along length-3 alternating
// paths until none is left.
func Matching(g *mbcgraph.Graph) []mbcgraph.Edge {
	mate := make(map[int]int)
	for _, e := range g.Edges() {
		if _, ok := mate[e.U]; ok {
			continue
		}
		if _, ok := mate[e.V]; ok {
			continue
		}
		mate[e.U] = e.V
		mate[e.V] = e.U
	}
	for augmentOnce(g, mate) {
	}
	matched := make([]mbcgraph.Edge, 0, len(mate)/2)
	for u, v := range mate {
		if u < v {
			matched = append(matched, mbcgraph.Edge{U: u, V: v})
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].U != matched[j].U {
			return matched[i].U < matched[j].U
		}
		return matched[i].V < matched[j].V
	})
	return matched
}

// augmentOnce looks for a free-matched-free alternating path u, v, w, z and
// flips it, growing the matching by one edge.
func augmentOnce(g *mbcgraph.Graph, mate map[int]int) bool {
	for _, u := range g.Nodes() {
		if _, ok := mate[u]; ok {
			continue
		}
		for _, v := range g.Neighbors(u) {
			w, ok := mate[v]
			if !ok || w == u {
				continue
			}
			for _, z := range g.Neighbors(w) {
				if z == u || z == v {
					continue
				}
				if _, ok := mate[z]; ok {
					continue
				}
				mate[u] = v
				mate[v] = u
				mate[w] = z
				mate[z] = w
				return true
			}
		}
	}
	return false
}
