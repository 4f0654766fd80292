package bounds

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"minimum_biclique_cover/src/mbcgraph"
)

const (
	lovaszIterations = 2000
	lovaszStep       = 1.0
)

// LovaszNumber computes the Lovasz theta number of g as
//
//	min lambda_max(B),  B symmetric, B_uv = 1 for u = v and non-adjacent u, v,
//
// with the entries on edges free. The minimization runs a projected
// subgradient descent: at each step the top eigenpair of B gives the
// subgradient v1*v1', which is applied on the free entries only with a
// diminishing step size. The best eigenvalue over all iterates is returned,
// so the result is always an upper estimate of theta.
func LovaszNumber(g *mbcgraph.Graph) (float64, error) {
	n := g.NumNodes()
	if n == 0 {
		return 0, nil
	}
	idx := g.NodeIndex()
	b := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			b.SetSym(i, j, 1)
		}
	}
	edges := g.Edges()
	if len(edges) == 0 {
		return float64(n), nil
	}

	best := math.Inf(1)
	var es mat.EigenSym
	var vecs mat.Dense
	for k := 0; k < lovaszIterations; k++ {
		if !es.Factorize(b, true) {
			return 0, errors.Errorf("eigendecomposition failed at iteration %d", k)
		}
		vals := es.Values(nil)
		top := vals[n-1]
		if top < best {
			best = top
		}
		es.VectorsTo(&vecs)
		step := lovaszStep / math.Sqrt(float64(k+1))
		for _, e := range edges {
			i, j := idx[e.U], idx[e.V]
			vi, vj := vecs.At(i, n-1), vecs.At(j, n-1)
			b.SetSym(i, j, b.At(i, j)-step*2*vi*vj)
		}
	}
	return best, nil
}
