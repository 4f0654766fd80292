package mbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimum_biclique_cover/src/solver"
)

func TestColumnGenerationStar(t *testing.T) {
	// the star cover seed already prices out, no column is added
	g := path(3)
	res, err := NewColumnGeneration(RunParams{}).Solve(g, testBackend)
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, res.Status)
	assert.Equal(t, float64(1), res.Objective)
	assert.Equal(t, float64(1), res.Bound)
	assert.Zero(t, res.ColumnsAdded)
	assert.True(t, res.Validated)
	assert.True(t, IsBicliqueCover(g, res.Cover))
}

func TestColumnGenerationTriangle(t *testing.T) {
	g := complete(3)
	res, err := NewColumnGeneration(RunParams{}).Solve(g, testBackend)
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, res.Status)
	assert.Equal(t, float64(2), res.Objective)
	assert.Equal(t, float64(2), res.Bound, "the fractional master rounds up to two")
	assert.True(t, res.Validated)
	assert.True(t, IsBicliqueCover(g, res.Cover))
}

func TestColumnGenerationPricesFullBiclique(t *testing.T) {
	// stars seed the pool, pricing must discover the single covering biclique
	g := completeBipartite(2, 2)
	res, err := NewColumnGeneration(RunParams{}).Solve(g, testBackend)
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, res.Status)
	assert.Equal(t, float64(1), res.Objective)
	assert.Equal(t, float64(1), res.Bound)
	assert.Positive(t, res.ColumnsAdded)
	assert.True(t, res.Validated)
}

func TestColumnGenerationEdgeFixSeeds(t *testing.T) {
	g := cycle(5)
	res, err := NewColumnGeneration(RunParams{EdgeFix: true}).Solve(g, testBackend)
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, res.Status)
	assert.Equal(t, float64(3), res.Objective)
	assert.True(t, res.Validated)
}

func TestColumnGenerationFullBipartite(t *testing.T) {
	g := completeBipartite(3, 3)
	res, err := NewColumnGeneration(RunParams{}).Solve(g, testBackend)
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, res.Status)
	assert.Equal(t, float64(1), res.Objective)
	assert.Equal(t, float64(1), res.Bound)
	assert.LessOrEqual(t, res.LowerBound, int(res.Objective))
	assert.True(t, res.Validated)
}

func TestColumnGenerationBoundNeedsConvergence(t *testing.T) {
	// the stars-only restricted master on K33 values 3 against an optimum
	// of 1; that value is only publishable once pricing has converged
	assert.Equal(t, 1.0, cgBound(3, false))
	assert.Equal(t, 1.0, cgBound(1, true))
	assert.Equal(t, 2.0, cgBound(1.5, true))
}

func TestColumnGenerationTimes(t *testing.T) {
	res, err := NewColumnGeneration(RunParams{}).Solve(complete(3), testBackend)
	require.NoError(t, err)
	assert.Positive(t, res.MasterTime)
	assert.Positive(t, res.PricingTime)
	assert.GreaterOrEqual(t, res.SolveTime, res.MasterTime)
}
