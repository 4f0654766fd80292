// Package mbc solves the minimum biclique cover problem: MIP formulations
// over an injected solver backend, warm starts, cover recovery and
// validation, and a column generation scheme over biclique columns.
package mbc

import (
	"fmt"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/dnaeon/go-priorityqueue.v1"

	"minimum_biclique_cover/src/bounds"
	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// Biclique is a complete bipartite subgraph given by its two disjoint sides.
type Biclique struct {
	Left  []int
	Right []int
}

// Edges lists the cross edges of the biclique in canonical form.
func (b Biclique) Edges() []mbcgraph.Edge {
	var edges []mbcgraph.Edge
	for _, u := range b.Left {
		for _, v := range b.Right {
			edges = append(edges, edgeOf(u, v))
		}
	}
	return edges
}

type Cover []Biclique

// RunParams carries the per-run toggles of a formulation.
type RunParams struct {
	LBMethod bounds.LBMethod
	UBMethod bounds.UBMethod
	// K overrides the biclique budget; zero means use the upper bound method.
	K                  int
	EdgeFix            bool
	WarmStart          bool
	BottomUp           bool
	Relaxed            bool
	CliqueInequalities bool
	TimeLimit          time.Duration
}

func (p RunParams) options() solver.Options {
	return solver.Options{TimeLimit: p.TimeLimit}
}

// Result reports one formulation run.
type Result struct {
	Model      string
	Status     solver.Status
	Objective  float64
	Bound      float64
	K          int
	KTime      time.Duration
	LowerBound int
	LBTime     time.Duration
	SolveTime  time.Duration
	Cover      Cover
	Validated  bool

	// column generation extras
	ColumnsAdded int
	MasterTime   time.Duration
	PricingTime  time.Duration
}

// Formulation builds and solves one model of the cover problem.
type Formulation interface {
	Name() string
	Solve(g *mbcgraph.Graph, slv solver.Interface) (*Result, error)
}

// ModelBuilder is implemented by the formulations that assemble a single
// model per run, so the harness can export it as an LP file instead of
// solving.
type ModelBuilder interface {
	BuildModel(g *mbcgraph.Graph, slv solver.Interface) (*solver.Model, error)
}

// NewFormulation returns the named formulation with the given parameters.
func NewFormulation(name string, p RunParams) (Formulation, error) {
	switch name {
	case "natural":
		return NewNatural(p), nil
	case "edge":
		return NewEdge(p), nil
	case "extended":
		return NewExtended(p), nil
	case "cg":
		return NewColumnGeneration(p), nil
	}
	return nil, fmt.Errorf("unsupported formulation %q", name)
}

func edgeOf(u, v int) mbcgraph.Edge {
	if u > v {
		u, v = v, u
	}
	return mbcgraph.Edge{U: u, V: v}
}

// IsBicliqueCover reports whether the bicliques are genuine complete
// bipartite subgraphs of g with disjoint sides and together cover every
// edge of g.
func IsBicliqueCover(g *mbcgraph.Graph, cover Cover) bool {
	visited := mapset.NewThreadUnsafeSet[mbcgraph.Edge]()
	for _, bc := range cover {
		for _, u := range bc.Left {
			for _, v := range bc.Right {
				if u == v || !g.HasEdge(u, v) {
					return false
				}
				visited.Add(edgeOf(u, v))
			}
		}
	}
	for _, e := range g.Edges() {
		if !visited.Contains(e) {
			return false
		}
	}
	return true
}

// CoverFromEdgeGroups recovers vertex bicliques from per-biclique edge
// sets: each group is two-colored by a traversal from its first endpoint,
// one side per color. Empty groups are dropped; groups that do not span a
// complete bipartite subgraph surface later through IsBicliqueCover.
func CoverFromEdgeGroups(groups [][]mbcgraph.Edge) Cover {
	var cover Cover
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		adj := make(map[int][]int)
		for _, e := range group {
			adj[e.U] = append(adj[e.U], e.V)
			adj[e.V] = append(adj[e.V], e.U)
		}
		color := make(map[int]int, len(adj))
		frontier := solver.NewQueue[int]()
		color[group[0].U] = 0
		frontier.Push(group[0].U)
		for frontier.Size() > 0 {
			v := frontier.Pop()
			for _, u := range adj[v] {
				if _, ok := color[u]; !ok {
					color[u] = 1 - color[v]
					frontier.Push(u)
				}
			}
		}
		var left, right []int
		for v, c := range color {
			if c == 0 {
				left = append(left, v)
			} else {
				right = append(right, v)
			}
		}
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		sort.Ints(left)
		sort.Ints(right)
		cover = append(cover, Biclique{Left: left, Right: right})
	}
	return cover
}

// StarCover groups the edges of g into stars around the given cover
// vertices: centers are consumed largest degree first and each claims its
// not-yet-claimed incident edges. Covers every edge whenever the vertices
// form a vertex cover.
func StarCover(g *mbcgraph.Graph, coverVertices []int) [][]mbcgraph.Edge {
	pq := priorityqueue.New[int, float64](priorityqueue.MaxHeap)
	scale := float64(len(coverVertices) + 1)
	for i, v := range coverVertices {
		pq.Put(v, float64(g.Degree(v))*scale-float64(i))
	}
	claimed := make(map[mbcgraph.Edge]bool)
	var groups [][]mbcgraph.Edge
	for pq.Len() > 0 {
		center := pq.Get().Value
		var group []mbcgraph.Edge
		for _, v := range g.Neighbors(center) {
			e := edgeOf(center, v)
			if claimed[e] {
				continue
			}
			claimed[e] = true
			group = append(group, e)
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// solveIncreasing probes growing biclique budgets: build constructs the
// feasibility model at budget k with every slot forced active, and the
// first feasible budget between lb and ub wins. The remaining time budget
// is split across iterations; running out surfaces as a time-limit result.
func solveIncreasing(name string, lb, ub int, opts solver.Options, slv solver.Interface,
	build func(k int) (*solver.Model, func(values []float64) Cover)) (*Result, time.Duration, error) {

	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}
	start := time.Now()
	for k := lb; k <= ub; k++ {
		iterOpts := opts
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return &Result{Model: name, Status: solver.StatusTimeLimit, K: k}, time.Since(start), nil
			}
			iterOpts.TimeLimit = remaining
		}
		m, recover := build(k)
		for b := 0; b < k; b++ {
			m.ColLower[b] = 1
		}
		sol, err := slv.Solve(m, iterOpts)
		if err != nil {
			return nil, time.Since(start), err
		}
		switch sol.Status {
		case solver.StatusOptimal:
			return &Result{
				Model:     name,
				Status:    sol.Status,
				Objective: float64(k),
				Bound:     float64(k),
				K:         k,
				Cover:     recover(sol.Values),
			}, time.Since(start), nil
		case solver.StatusInfeasible:
			continue
		case solver.StatusTimeLimit:
			return &Result{Model: name, Status: sol.Status, K: k, Bound: float64(k)}, time.Since(start), nil
		default:
			continue
		}
	}
	return &Result{Model: name, Status: solver.StatusInfeasible, K: ub}, time.Since(start), nil
}
