package mbcgraph

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// CliqueVisitor receives one maximal clique per call, vertices ascending.
// Returning false stops the enumeration.
type CliqueVisitor func(clique []int) bool

// VisitMaximalCliques enumerates the maximal cliques of g with
// Bron-Kerbosch pivoting. Cliques arrive in a deterministic order.
func (g *Graph) VisitMaximalCliques(visit CliqueVisitor) {
	if len(g.adj) == 0 {
		return
	}
	p := mapset.NewSet[int]()
	for v := range g.adj {
		p.Add(v)
	}
	g.bronKerbosch(mapset.NewSet[int](), p, mapset.NewSet[int](), visit)
}

func (g *Graph) bronKerbosch(r, p, x mapset.Set[int], visit CliqueVisitor) bool {
	if p.Cardinality() == 0 && x.Cardinality() == 0 {
		clique := r.ToSlice()
		sort.Ints(clique)
		return visit(clique)
	}
	pivot := g.pickPivot(p, x)
	candidates := p.Difference(g.NeighborSet(pivot)).ToSlice()
	sort.Ints(candidates)
	for _, v := range candidates {
		nv := g.NeighborSet(v)
		r.Add(v)
		ok := g.bronKerbosch(r, p.Intersect(nv), x.Intersect(nv), visit)
		r.Remove(v)
		if !ok {
			return false
		}
		p.Remove(v)
		x.Add(v)
	}
	return true
}

// pickPivot takes the vertex of P ∪ X with the most neighbors inside P,
// smallest ID on ties.
func (g *Graph) pickPivot(p, x mapset.Set[int]) int {
	pool := p.Union(x).ToSlice()
	sort.Ints(pool)
	best, bestDeg := pool[0], -1
	for _, v := range pool {
		deg := p.Intersect(g.NeighborSet(v)).Cardinality()
		if deg > bestDeg {
			best, bestDeg = v, deg
		}
	}
	return best
}

// MaximalCliques collects every maximal clique of g.
func (g *Graph) MaximalCliques() [][]int {
	var cliques [][]int
	g.VisitMaximalCliques(func(clique []int) bool {
		cliques = append(cliques, clique)
		return true
	})
	return cliques
}

// MaximalIndependentSets collects every maximal independent set of g, the
// maximal cliques of its complement.
func (g *Graph) MaximalIndependentSets() [][]int {
	return g.Complement().MaximalCliques()
}
