package bounds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

func buildGraph(edges [][2]int) *mbcgraph.Graph {
	g := mbcgraph.New()
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

func path(n int) *mbcgraph.Graph {
	g := mbcgraph.New()
	g.AddNode(0)
	for i := 1; i < n; i++ {
		g.AddEdge(i-1, i)
	}
	return g
}

func cycle(n int) *mbcgraph.Graph {
	g := path(n)
	g.AddEdge(n-1, 0)
	return g
}

func complete(n int) *mbcgraph.Graph {
	g := mbcgraph.New()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.AddEdge(i, j)
		}
	}
	return g
}

func completeBipartite(a, b int) *mbcgraph.Graph {
	g := mbcgraph.New()
	for i := 0; i < a; i++ {
		for j := a; j < a+b; j++ {
			g.AddEdge(i, j)
		}
	}
	return g
}

func TestParseLBMethod(t *testing.T) {
	for _, s := range []string{
		"match", "lovasz", "clique", "independent_edges",
		"maximal_independent_set", "union_of_cliques", "directed_stars",
		"genetic_edges",
	} {
		m, err := ParseLBMethod(s)
		require.NoError(t, err)
		assert.Equal(t, LBMethod(s), m)
	}
	_, err := ParseLBMethod("nope")
	assert.Error(t, err)
}

func TestParseUBMethod(t *testing.T) {
	for _, s := range []string{"number", "vertex", "merge_stars"} {
		m, err := ParseUBMethod(s)
		require.NoError(t, err)
		assert.Equal(t, UBMethod(s), m)
	}
	_, err := ParseUBMethod("nope")
	assert.Error(t, err)
}

func TestLowerBoundValues(t *testing.T) {
	slv := solver.BranchBound{}
	graphs := map[string]*mbcgraph.Graph{
		"c5":  cycle(5),
		"k4":  complete(4),
		"p4":  path(4),
		"k23": completeBipartite(2, 3),
	}
	want := map[LBMethod]map[string]int{
		LBMatch:                 {"c5": 1, "k4": 1, "p4": 2, "k23": 1},
		LBClique:                {"c5": 1, "k4": 2, "p4": 1, "k23": 1},
		LBIndependentEdges:      {"c5": 2, "k4": 1, "p4": 2, "k23": 1},
		LBMaximalIndependentSet: {"c5": 3, "k4": 2, "p4": 2, "k23": 1},
		LBUnionOfCliques:        {"c5": 1, "k4": 2, "p4": 1, "k23": 1},
		LBDirectedStars:         {"c5": 2, "k4": 1, "p4": 2, "k23": 1},
	}
	for method, byGraph := range want {
		for name, value := range byGraph {
			lb, err := LowerBound(graphs[name], method, slv, solver.Options{})
			require.NoError(t, err, "%s on %s", method, name)
			assert.Equal(t, value, lb, "%s on %s", method, name)
		}
	}
}

func TestUpperBoundValues(t *testing.T) {
	slv := solver.BranchBound{}
	graphs := map[string]*mbcgraph.Graph{
		"c5":  cycle(5),
		"k4":  complete(4),
		"p4":  path(4),
		"k23": completeBipartite(2, 3),
	}
	want := map[UBMethod]map[string]int{
		UBNumber:     {"c5": 4, "k4": 3, "p4": 3, "k23": 4},
		UBVertex:     {"c5": 3, "k4": 3, "p4": 2, "k23": 2},
		UBMergeStars: {"c5": 3, "k4": 3, "p4": 2, "k23": 2},
	}
	for method, byGraph := range want {
		for name, value := range byGraph {
			ub, err := UpperBound(graphs[name], method, slv, solver.Options{})
			require.NoError(t, err, "%s on %s", method, name)
			assert.Equal(t, value, ub, "%s on %s", method, name)
		}
	}
}

func TestBoundsSandwich(t *testing.T) {
	slv := solver.BranchBound{}
	graphs := map[string]*mbcgraph.Graph{
		"c5":  cycle(5),
		"k4":  complete(4),
		"p4":  path(4),
		"k23": completeBipartite(2, 3),
	}
	lbMethods := []LBMethod{
		LBMatch, LBLovasz, LBClique, LBIndependentEdges,
		LBMaximalIndependentSet, LBUnionOfCliques, LBDirectedStars,
		LBGeneticEdges,
	}
	ubMethods := []UBMethod{UBNumber, UBVertex, UBMergeStars}
	for name, g := range graphs {
		for _, lbm := range lbMethods {
			lb, err := LowerBound(g, lbm, slv, solver.Options{})
			require.NoError(t, err)
			for _, ubm := range ubMethods {
				ub, err := UpperBound(g, ubm, slv, solver.Options{})
				require.NoError(t, err)
				assert.LessOrEqual(t, lb, ub, "%s vs %s on %s", lbm, ubm, name)
			}
		}
	}
}

func TestVertexUpperBoundMonotoneUnderEdgeDeletion(t *testing.T) {
	slv := solver.BranchBound{}
	edges := complete(5).Edges()
	prev := len(edges)
	for i := len(edges); i >= 0; i-- {
		g := mbcgraph.New()
		for v := 0; v < 5; v++ {
			g.AddNode(v)
		}
		for _, e := range edges[:i] {
			g.AddEdge(e.U, e.V)
		}
		ub, err := UpperBound(g, UBVertex, slv, solver.Options{})
		require.NoError(t, err)
		assert.LessOrEqual(t, ub, prev, "after deleting down to %d edges", i)
		prev = ub
	}
}

func TestBoundsEmptyGraph(t *testing.T) {
	slv := solver.BranchBound{}
	g := mbcgraph.New()
	g.AddNode(0)
	g.AddNode(1)
	lb, err := LowerBound(g, LBMatch, slv, solver.Options{})
	require.NoError(t, err)
	assert.Zero(t, lb)
	ub, err := UpperBound(g, UBVertex, slv, solver.Options{})
	require.NoError(t, err)
	assert.Zero(t, ub)
}

func TestAcceptSolution(t *testing.T) {
	require.NoError(t, acceptSolution(&solver.Solution{Status: solver.StatusOptimal}))
	require.NoError(t, acceptSolution(&solver.Solution{Status: solver.StatusTimeLimit, Values: []float64{1}}))
	assert.ErrorIs(t, acceptSolution(&solver.Solution{Status: solver.StatusTimeLimit}), solver.ErrNotSolved)
	assert.ErrorIs(t, acceptSolution(&solver.Solution{Status: solver.StatusInfeasible}), solver.ErrInfeasible)
	assert.ErrorIs(t, acceptSolution(&solver.Solution{Status: solver.StatusUnbounded}), solver.ErrUnbounded)
}

func TestLowerBoundUnknownMethod(t *testing.T) {
	_, err := LowerBound(cycle(5), LBMethod("nope"), solver.BranchBound{}, solver.Options{})
	assert.Error(t, err)
}

func TestCountMaximalIndependentSets(t *testing.T) {
	assert.Equal(t, 5, CountMaximalIndependentSets(cycle(5), 0, 0))
	assert.Equal(t, 3, CountMaximalIndependentSets(complete(3), 0, 0))
	assert.Equal(t, 2, CountMaximalIndependentSets(completeBipartite(2, 3), 0, 0))
}

func TestCountMaximalIndependentSetsCaps(t *testing.T) {
	assert.Equal(t, 5, CountMaximalIndependentSets(cycle(5), time.Hour, defaultCliqueLimit))
	assert.Zero(t, CountMaximalIndependentSets(cycle(5), time.Nanosecond, 0))
}
