package bounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

func TestMaxClique(t *testing.T) {
	slv := solver.BranchBound{}
	cases := []struct {
		name string
		g    *mbcgraph.Graph
		want int
	}{
		{"complete", complete(4), 4},
		{"cycle", cycle(5), 2},
		{"bipartite", completeBipartite(2, 3), 2},
		{"pendant triangle", buildGraph([][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}}), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			omega, err := MaxClique(tc.g, slv, solver.Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, omega)
		})
	}
}

func TestVertexCoverSolution(t *testing.T) {
	slv := solver.BranchBound{}
	cases := []struct {
		name string
		g    *mbcgraph.Graph
		size int
	}{
		{"k5", complete(5), 4},
		{"c5", cycle(5), 3},
		{"p5", path(5), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cover, err := VertexCoverSolution(tc.g, slv, solver.Options{})
			require.NoError(t, err)
			assert.Len(t, cover, tc.size)
			inCover := make(map[int]bool)
			for _, v := range cover {
				inCover[v] = true
			}
			for _, e := range tc.g.Edges() {
				assert.True(t, inCover[e.U] || inCover[e.V], "edge (%d, %d) uncovered", e.U, e.V)
			}
		})
	}
}

func TestVertexCoverSolutionPath(t *testing.T) {
	cover, err := VertexCoverSolution(path(5), solver.BranchBound{}, solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, cover)
}

func TestIndependentEdges(t *testing.T) {
	slv := solver.BranchBound{}
	cases := []struct {
		name string
		g    *mbcgraph.Graph
		want int
	}{
		{"triangle", complete(3), 1},
		{"k4", complete(4), 1},
		{"c5", cycle(5), 2},
		{"p4", path(4), 2},
		{"bipartite", completeBipartite(2, 3), 1},
		{"two disjoint edges", buildGraph([][2]int{{0, 1}, {2, 3}}), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edges, err := IndependentEdges(tc.g, slv, solver.Options{})
			require.NoError(t, err)
			assert.Len(t, edges, tc.want)
			assert.True(t, IsIndependentEdgeSet(tc.g, edges))
		})
	}
}

func TestIsIndependentEdgeSet(t *testing.T) {
	g := complete(4)
	assert.False(t, IsIndependentEdgeSet(g, []mbcgraph.Edge{{U: 0, V: 1}, {U: 2, V: 3}}))
	assert.True(t, IsIndependentEdgeSet(g, []mbcgraph.Edge{{U: 0, V: 1}}))
	c5 := cycle(5)
	assert.True(t, IsIndependentEdgeSet(c5, []mbcgraph.Edge{{U: 0, V: 1}, {U: 2, V: 3}}))
	assert.False(t, IsIndependentEdgeSet(c5, []mbcgraph.Edge{{U: 0, V: 1}, {U: 1, V: 2}}))
}

func TestUnionOfCliques(t *testing.T) {
	slv := solver.BranchBound{}
	cases := []struct {
		name string
		g    *mbcgraph.Graph
		want int
	}{
		{"k4", complete(4), 2},
		{"c5", cycle(5), 1},
		{"p4", path(4), 1},
		{"bipartite", completeBipartite(2, 3), 1},
		{"two triangles", buildGraph([][2]int{{0, 1}, {0, 2}, {1, 2}, {3, 4}, {3, 5}, {4, 5}}), 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lb, err := UnionOfCliques(tc.g, slv, solver.Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, lb)
		})
	}
}

func TestDirectedStars(t *testing.T) {
	slv := solver.BranchBound{}
	cases := []struct {
		name string
		g    *mbcgraph.Graph
		want int
	}{
		{"triangle", complete(3), 1},
		{"k4", complete(4), 1},
		{"c5", cycle(5), 2},
		{"p4", path(4), 2},
		{"bipartite", completeBipartite(2, 3), 1},
		{"two disjoint edges", buildGraph([][2]int{{0, 1}, {2, 3}}), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lb, err := DirectedStars(tc.g, slv, solver.Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, lb)
		})
	}
}

func TestExtendIndependentEdges(t *testing.T) {
	slv := solver.BranchBound{}
	g := path(3)
	groups, err := ExtendIndependentEdges(g, []mbcgraph.Edge{{U: 0, V: 1}}, slv, solver.Options{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 2)
	for _, a := range groups[0] {
		assert.Equal(t, 1, a.To)
		assert.True(t, g.HasEdge(a.From, a.To))
	}
}

func TestExtendIndependentEdgesBipartite(t *testing.T) {
	slv := solver.BranchBound{}
	g := completeBipartite(2, 3)
	seeds := []mbcgraph.Edge{{U: 0, V: 2}}
	groups, err := ExtendIndependentEdges(g, seeds, slv, solver.Options{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 6)
	for _, a := range groups[0] {
		assert.True(t, g.HasEdge(a.From, a.To))
		assert.Less(t, a.From, 2)
		assert.GreaterOrEqual(t, a.To, 2)
	}
}
