package bounds

import (
	"fmt"
	"math"
	"sort"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// UnionOfCliques selects a maximum edge subset in which every vertex sees a
// clique, then keeps the selection components that induce pairwise
// non-adjacent cliques. Each kept component of size s contributes
// ceil(log2 s), the cover number of a clique on s vertices, and
// non-adjacency keeps the contributions additive.
func UnionOfCliques(g *mbcgraph.Graph, slv solver.Interface, opts solver.Options) (int, error) {
	edges := g.Edges()
	pos := make(map[mbcgraph.Edge]int, len(edges))
	m := solver.NewModel("union_of_cliques")
	m.Maximize = true
	for i, e := range edges {
		pos[e] = i
		m.AddBinary(1, fmt.Sprintf("y_%d_%d", e.U, e.V))
	}
	for _, v := range g.Nodes() {
		neighbors := g.Neighbors(v)
		for a := range neighbors {
			for b := a + 1; b < len(neighbors); b++ {
				i, j := neighbors[a], neighbors[b]
				if g.HasEdge(i, j) {
					continue
				}
				m.AddRow(math.Inf(-1), 1, "",
					solver.Entry{Col: pos[canonicalEdge(v, i)], Val: 1},
					solver.Entry{Col: pos[canonicalEdge(v, j)], Val: 1})
			}
		}
	}
	sol, err := slv.Solve(m, opts)
	if err != nil {
		return 0, fmt.Errorf("Error while solving union of cliques: %v", err)
	}
	if err := acceptSolution(sol); err != nil {
		return 0, fmt.Errorf("Error while solving union of cliques: %v", err)
	}
	var selected []mbcgraph.Edge
	for i, e := range edges {
		if sol.Values[i] > 0.5 {
			selected = append(selected, e)
		}
	}
	lb := 0
	for _, component := range independentCliques(g, edgeComponents(selected)) {
		lb += ceilLog2(float64(len(component)))
	}
	return lb, nil
}

// independentCliques filters components down to a family of cliques with no
// edge of g between any two of them, preferring larger components.
func independentCliques(g *mbcgraph.Graph, components [][]int) [][]int {
	sort.Slice(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
	var kept [][]int
	var keptVertices []int
	for _, component := range components {
		if !isClique(g, component) || touchesAny(g, component, keptVertices) {
			continue
		}
		kept = append(kept, component)
		keptVertices = append(keptVertices, component...)
	}
	return kept
}

func isClique(g *mbcgraph.Graph, vertices []int) bool {
	for i := range vertices {
		for j := i + 1; j < len(vertices); j++ {
			if !g.HasEdge(vertices[i], vertices[j]) {
				return false
			}
		}
	}
	return true
}

func touchesAny(g *mbcgraph.Graph, vertices, others []int) bool {
	for _, u := range vertices {
		for _, v := range others {
			if g.HasEdge(u, v) {
				return true
			}
		}
	}
	return false
}

func canonicalEdge(u, v int) mbcgraph.Edge {
	if u > v {
		u, v = v, u
	}
	return mbcgraph.Edge{U: u, V: v}
}

// edgeComponents groups the vertices touched by the edge set into connected
// components, each sorted ascending.
func edgeComponents(edges []mbcgraph.Edge) [][]int {
	adj := make(map[int][]int)
	for _, e := range edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	vertices := make([]int, 0, len(adj))
	for v := range adj {
		vertices = append(vertices, v)
	}
	sort.Ints(vertices)
	seen := make(map[int]bool, len(adj))
	var components [][]int
	for _, start := range vertices {
		if seen[start] {
			continue
		}
		seen[start] = true
		component := []int{start}
		frontier := []int{start}
		for len(frontier) > 0 {
			v := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			for _, u := range adj[v] {
				if !seen[u] {
					seen[u] = true
					component = append(component, u)
					frontier = append(frontier, u)
				}
			}
		}
		sort.Ints(component)
		components = append(components, component)
	}
	return components
}
