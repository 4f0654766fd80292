// Package mbcgraph holds the undirected graphs the biclique cover study runs
// on: the Graph type itself, GML and edge-list loaders, a directory-backed
// graph store and the random generators used to build the instance corpus.
package mbcgraph

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"gonum.org/v1/gonum/mat"
)

// Edge is an undirected edge in canonical order, U < V.
type Edge struct {
	U, V int
}

// Arc is one orientation of an undirected edge.
type Arc struct {
	From, To int
}

// Graph is a simple undirected graph with integer vertex IDs. IDs come from
// the input files and are not required to be contiguous. Once a graph has
// been loaded for an experiment it is treated as immutable.
type Graph struct {
	adj map[int]mapset.Set[int]
}

func New() *Graph {
	return &Graph{adj: make(map[int]mapset.Set[int])}
}

// AddNode inserts an isolated vertex. Adding an existing vertex is a no-op.
func (g *Graph) AddNode(v int) {
	if _, ok := g.adj[v]; !ok {
		g.adj[v] = mapset.NewSet[int]()
	}
}

// AddEdge inserts the undirected edge {u, v}, creating missing endpoints.
// Self-loops and duplicate edges are ignored.
func (g *Graph) AddEdge(u, v int) {
	if u == v {
		return
	}
	g.AddNode(u)
	g.AddNode(v)
	g.adj[u].Add(v)
	g.adj[v].Add(u)
}

func (g *Graph) HasNode(v int) bool {
	_, ok := g.adj[v]
	return ok
}

func (g *Graph) HasEdge(u, v int) bool {
	s, ok := g.adj[u]
	return ok && s.Contains(v)
}

func (g *Graph) NumNodes() int { return len(g.adj) }

func (g *Graph) NumEdges() int {
	total := 0
	for _, s := range g.adj {
		total += s.Cardinality()
	}
	return total / 2
}

// Nodes returns the vertex IDs in ascending order.
func (g *Graph) Nodes() []int {
	nodes := make([]int, 0, len(g.adj))
	for v := range g.adj {
		nodes = append(nodes, v)
	}
	sort.Ints(nodes)
	return nodes
}

// Edges returns the canonical edges sorted by (U, V).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.NumEdges())
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			if u < v {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	return edges
}

// Arcs returns both orientations of every edge, sorted by (From, To).
func (g *Graph) Arcs() []Arc {
	arcs := make([]Arc, 0, 2*g.NumEdges())
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			arcs = append(arcs, Arc{From: u, To: v})
		}
	}
	return arcs
}

// NonAdjacentArcs returns every ordered pair (u, v) with u != v that is NOT
// an edge of g: the arcs of the complement of the bidirected graph.
func (g *Graph) NonAdjacentArcs() []Arc {
	nodes := g.Nodes()
	arcs := make([]Arc, 0)
	for _, u := range nodes {
		for _, v := range nodes {
			if u != v && !g.HasEdge(u, v) {
				arcs = append(arcs, Arc{From: u, To: v})
			}
		}
	}
	return arcs
}

// Neighbors returns the adjacency of v in ascending order.
func (g *Graph) Neighbors(v int) []int {
	s, ok := g.adj[v]
	if !ok {
		return nil
	}
	ns := s.ToSlice()
	sort.Ints(ns)
	return ns
}

// NeighborSet exposes the adjacency of v as a set for subset/intersection
// tests. The returned set must not be mutated.
func (g *Graph) NeighborSet(v int) mapset.Set[int] {
	if s, ok := g.adj[v]; ok {
		return s
	}
	return mapset.NewSet[int]()
}

func (g *Graph) Degree(v int) int {
	if s, ok := g.adj[v]; ok {
		return s.Cardinality()
	}
	return 0
}

// CommonNeighbors returns the vertices adjacent to both u and v, ascending.
func (g *Graph) CommonNeighbors(u, v int) []int {
	su, ok := g.adj[u]
	if !ok {
		return nil
	}
	sv, ok := g.adj[v]
	if !ok {
		return nil
	}
	common := su.Intersect(sv).ToSlice()
	sort.Ints(common)
	return common
}

func (g *Graph) Clone() *Graph {
	c := New()
	for v, s := range g.adj {
		c.adj[v] = s.Clone()
	}
	return c
}

// Complement returns the graph on the same vertices whose edges are exactly
// the non-edges of g.
func (g *Graph) Complement() *Graph {
	c := New()
	nodes := g.Nodes()
	for _, v := range nodes {
		c.AddNode(v)
	}
	for i, u := range nodes {
		for _, v := range nodes[i+1:] {
			if !g.HasEdge(u, v) {
				c.AddEdge(u, v)
			}
		}
	}
	return c
}

// Power2 returns the square of g: vertices at distance one or two become
// adjacent.
func (g *Graph) Power2() *Graph {
	p := New()
	for _, v := range g.Nodes() {
		p.AddNode(v)
	}
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			p.AddEdge(u, v)
			for _, w := range g.Neighbors(v) {
				if w != u {
					p.AddEdge(u, w)
				}
			}
		}
	}
	return p
}

// NodeIndex maps vertex IDs to their position in Nodes() order.
func (g *Graph) NodeIndex() map[int]int {
	idx := make(map[int]int, len(g.adj))
	for i, v := range g.Nodes() {
		idx[v] = i
	}
	return idx
}

// AdjacencyMatrix returns the dense 0/1 adjacency matrix in Nodes() order.
func (g *Graph) AdjacencyMatrix() *mat.Dense {
	nodes := g.Nodes()
	n := len(nodes)
	a := mat.NewDense(n, n, nil)
	idx := g.NodeIndex()
	for _, e := range g.Edges() {
		a.Set(idx[e.U], idx[e.V], 1)
		a.Set(idx[e.V], idx[e.U], 1)
	}
	return a
}

// Density returns 2m / n(n-1), zero for graphs with fewer than two vertices.
func (g *Graph) Density() float64 {
	n := g.NumNodes()
	if n < 2 {
		return 0
	}
	return 2 * float64(g.NumEdges()) / float64(n*(n-1))
}

func (g *Graph) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "N. nodes: %d\n", g.NumNodes())
	fmt.Fprintf(s, "N. edges: %d\n", g.NumEdges())
	for _, e := range g.Edges() {
		fmt.Fprintf(s, "%d %d\n", e.U, e.V)
	}
	return s.String()
}
