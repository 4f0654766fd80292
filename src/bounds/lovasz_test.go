package bounds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

func TestLovaszNumberEdgeless(t *testing.T) {
	g := mbcgraph.New()
	for v := 0; v < 5; v++ {
		g.AddNode(v)
	}
	theta, err := LovaszNumber(g)
	require.NoError(t, err)
	assert.Equal(t, 5.0, theta)
}

func TestLovaszNumberComplete(t *testing.T) {
	theta, err := LovaszNumber(complete(4))
	require.NoError(t, err)
	assert.InDelta(t, 1, theta, 0.4)
}

func TestLovaszNumberPentagon(t *testing.T) {
	theta, err := LovaszNumber(cycle(5))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5), theta, 0.4)
}

func TestLovaszLowerBoundPentagon(t *testing.T) {
	// theta of the self-complementary pentagon is sqrt 5, and the descent
	// iterates only ever over-estimate it; the floored bound stays at 1
	lb, err := LowerBound(cycle(5), LBLovasz, solver.BranchBound{}, solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, lb)
}

func TestLovaszLowerBound(t *testing.T) {
	slv := solver.BranchBound{}
	// The complements of complete graphs have no edges, so the theta
	// computation is exact and the bound is the binary logarithm.
	for n, want := range map[int]int{2: 1, 4: 2, 8: 3} {
		lb, err := LowerBound(complete(n), LBLovasz, slv, solver.Options{})
		require.NoError(t, err)
		assert.Equal(t, want, lb, "k%d", n)
	}
}
