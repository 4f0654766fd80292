package bounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimum_biclique_cover/src/solver"
)

func TestGeneticIndependentEdgesTriangle(t *testing.T) {
	g := complete(3)
	edges := GeneticIndependentEdges(g, 10)
	assert.Len(t, edges, 1)
	assert.True(t, IsIndependentEdgeSet(g, edges))
}

func TestGeneticIndependentEdgesDisjointPair(t *testing.T) {
	g := buildGraph([][2]int{{0, 1}, {2, 3}})
	edges := GeneticIndependentEdges(g, 10)
	assert.GreaterOrEqual(t, len(edges), 1)
	assert.LessOrEqual(t, len(edges), 2)
	assert.True(t, IsIndependentEdgeSet(g, edges))
}

func TestGeneticIndependentEdgesEmpty(t *testing.T) {
	assert.Empty(t, GeneticIndependentEdges(path(1), 5))
}

func TestGeneticLowerBound(t *testing.T) {
	lb, err := LowerBound(cycle(5), LBGeneticEdges, solver.BranchBound{}, solver.Options{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lb, 1)
	assert.LessOrEqual(t, lb, 2)
}
