package mbcgraph

import (
	"fmt"
	"math"
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"
)

// Multipartite builds a complete multipartite graph with the given partition
// sizes, vertices numbered consecutively from 0. When edgeProb < 1 each
// cross-partition edge is kept with that probability.
func Multipartite(sizes []int, edgeProb float64, rng *rand.Rand) *Graph {
	g := New()
	offsets := make([]int, len(sizes)+1)
	for i, size := range sizes {
		offsets[i+1] = offsets[i] + size
	}
	for v := 0; v < offsets[len(sizes)]; v++ {
		g.AddNode(v)
	}
	for i := range sizes {
		for j := i + 1; j < len(sizes); j++ {
			for u := offsets[i]; u < offsets[i+1]; u++ {
				for v := offsets[j]; v < offsets[j+1]; v++ {
					if edgeProb >= 1 || rng.Float64() < edgeProb {
						g.AddEdge(u, v)
					}
				}
			}
		}
	}
	return g
}

// poissonWeight is the Poisson pmf at p with the support shifted to start
// at x0.
func poissonWeight(p, x0 int, mu float64) float64 {
	k := p - x0
	if k < 0 {
		return 0
	}
	w := math.Exp(-mu)
	for i := 1; i <= k; i++ {
		w *= mu / float64(i)
	}
	return w
}

// PoissonChoice draws a value from [lo, hi) with Poisson weights shifted to
// x0 and mean mu.
func PoissonChoice(rng *rand.Rand, lo, hi, x0 int, mu float64) int {
	weights := make([]float64, hi-lo)
	total := 0.0
	for p := lo; p < hi; p++ {
		weights[p-lo] = poissonWeight(p, x0, mu)
		total += weights[p-lo]
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return lo + i
		}
	}
	return hi - 1
}

// RandomIndependentSets draws r subsets of {0..n-1} whose family is an
// antichain: set sizes follow a Poisson over [minSize, maxSize], and any new
// set that is contained in an existing one is rejected while existing sets
// contained in the new one are purged.
func RandomIndependentSets(n, r, minSize, maxSize int, rng *rand.Rand) ([]mapset.Set[int], error) {
	if maxSize == 0 {
		maxSize = n
	}
	if minSize < 1 || minSize > n || maxSize < 1 || maxSize > n {
		return nil, fmt.Errorf("independent set sizes must lie within [1, %d], got [%d, %d]", n, minSize, maxSize)
	}
	sets := make([]mapset.Set[int], 0, r)
	for len(sets) != r {
		size := PoissonChoice(rng, minSize, maxSize+1, minSize, float64(maxSize+1-minSize)/3)
		rs := mapset.NewSet[int]()
		for i := 0; i < size; i++ {
			rs.Add(rng.Intn(n))
		}
		contained := false
		for _, s := range sets {
			if rs.IsSubset(s) {
				contained = true
				break
			}
		}
		if contained {
			continue
		}
		kept := sets[:0]
		for _, s := range sets {
			if !s.IsSubset(rs) {
				kept = append(kept, s)
			}
		}
		sets = append(kept, rs)
	}
	return sets, nil
}

// FromIndependentSets returns the graph in which each given set induces no
// edges: the union of the sets as cliques, complemented. Vertices are only
// those that appear in some set.
func FromIndependentSets(sets []mapset.Set[int]) *Graph {
	g := New()
	for _, s := range sets {
		members := s.ToSlice()
		for _, v := range members {
			g.AddNode(v)
		}
		for i, u := range members {
			for _, v := range members[i+1:] {
				g.AddEdge(u, v)
			}
		}
	}
	return g.Complement()
}

// SOSkNodeSets returns the windows of k consecutive breakpoints 1..bps that
// an SOS-k constraint allows to be simultaneously active.
func SOSkNodeSets(bps, k int) ([][]int, error) {
	if bps <= 0 || k <= 0 {
		return nil, fmt.Errorf("both bps and k must be larger than 0, got bps=%d k=%d", bps, k)
	}
	if bps <= k {
		return nil, fmt.Errorf("cannot build SOS-%d windows over %d breakpoints", k, bps)
	}
	sets := make([][]int, 0, bps-k+1)
	for i := 0; i <= bps-k; i++ {
		window := make([]int, k)
		for j := range window {
			window[j] = i + j + 1
		}
		sets = append(sets, window)
	}
	return sets, nil
}

// ConflictGraph joins each node set into a clique and complements the
// result: two nodes conflict exactly when no set contains both.
func ConflictGraph(nodeSets [][]int) *Graph {
	g := New()
	for _, nodeSet := range nodeSets {
		for _, v := range nodeSet {
			g.AddNode(v)
		}
	}
	for _, nodeSet := range nodeSets {
		for i, u := range nodeSet {
			for _, v := range nodeSet[i+1:] {
				g.AddEdge(u, v)
			}
		}
	}
	return g.Complement()
}

// SOSkConflictGraph builds the conflict graph of an SOS-k constraint over
// bps breakpoints, the instance family that motivates biclique covering.
func SOSkConflictGraph(bps, k int) (*Graph, error) {
	nodeSets, err := SOSkNodeSets(bps, k)
	if err != nil {
		return nil, err
	}
	return ConflictGraph(nodeSets), nil
}
