package mbc

import (
	"time"

	log "github.com/sirupsen/logrus"

	"minimum_biclique_cover/src/bounds"
	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

// runPrep is the bound material every formulation needs before its model
// can be built: the fixed lower bound, the biclique budget k, the
// independent edges used for fixing and the star groups used for warm
// starts.
type runPrep struct {
	lb, k         int
	lbTime, kTime time.Duration
	indepEdges    []mbcgraph.Edge
	warmGroups    [][]mbcgraph.Edge
	opts          solver.Options
}

// prepareRun computes the bounds of a run. The independent edges, when
// requested, also tighten the lower bound: fixing them pins one biclique
// each, so the budget can never drop below their count.
func prepareRun(g *mbcgraph.Graph, p RunParams, slv solver.Interface) (*runPrep, error) {
	pr := &runPrep{opts: p.options()}

	start := time.Now()
	lb := 1
	if p.LBMethod != "" {
		var err error
		lb, err = bounds.LowerBound(g, p.LBMethod, slv, pr.opts)
		if err != nil {
			return nil, err
		}
		if lb < 1 {
			lb = 1
		}
	}
	if p.EdgeFix {
		edges, err := bounds.IndependentEdges(g, slv, pr.opts)
		if err != nil {
			return nil, err
		}
		pr.indepEdges = edges
		if len(edges) > lb {
			lb = len(edges)
		}
	}
	pr.lb = lb
	pr.lbTime = time.Since(start)

	start = time.Now()
	if p.K > 0 {
		pr.k = p.K
	} else {
		method := p.UBMethod
		if method == "" {
			method = bounds.UBVertex
		}
		k, err := bounds.UpperBound(g, method, slv, pr.opts)
		if err != nil {
			return nil, err
		}
		pr.k = k
	}
	if pr.k < pr.lb {
		pr.k = pr.lb
	}
	pr.kTime = time.Since(start)

	if p.WarmStart {
		cover, err := bounds.VertexCoverSolution(g, slv, pr.opts)
		if err != nil {
			return nil, err
		}
		pr.warmGroups = StarCover(g, cover)
	}

	log.WithFields(log.Fields{
		"lb": pr.lb, "k": pr.k,
		"lb_time": pr.lbTime, "k_time": pr.kTime,
	}).Debug("run prepared")
	return pr, nil
}

func (pr *runPrep) fill(res *Result) {
	res.K = pr.k
	res.KTime = pr.kTime
	res.LowerBound = pr.lb
	res.LBTime = pr.lbTime
}

// emptyResult is the degenerate run on an edgeless graph: zero bicliques
// cover zero edges.
func emptyResult(name string) *Result {
	return &Result{Model: name, Status: solver.StatusOptimal, Validated: true}
}

// modelBuild constructs the model of a formulation at budget k together
// with the cover-recovery function for its solution values. The budget
// columns z_0..z_{k-1} must be the first k columns of the model.
type modelBuild func(pr *runPrep, k int) (*solver.Model, func(values []float64) Cover)

// runFormulation drives one formulation run: bounds, model, one blocking
// solve (or the bottom-up budget probe) and cover recovery plus validation.
func runFormulation(name string, g *mbcgraph.Graph, p RunParams, slv solver.Interface, build modelBuild) (*Result, error) {
	if g.NumEdges() == 0 {
		return emptyResult(name), nil
	}
	pr, err := prepareRun(g, p, slv)
	if err != nil {
		return nil, err
	}

	if p.BottomUp {
		res, elapsed, err := solveIncreasing(name, pr.lb, pr.k, pr.opts, slv, func(k int) (*solver.Model, func([]float64) Cover) {
			return build(pr, k)
		})
		if err != nil {
			return nil, err
		}
		k := res.K
		pr.fill(res)
		res.K = k
		res.SolveTime = elapsed
		if res.Cover != nil {
			res.Validated = IsBicliqueCover(g, res.Cover)
		}
		logResult(g, res)
		return res, nil
	}

	m, recover := build(pr, pr.k)
	start := time.Now()
	sol, err := slv.Solve(m, pr.opts)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Model:     name,
		Status:    sol.Status,
		Objective: sol.Objective,
		Bound:     sol.Bound,
		SolveTime: time.Since(start),
	}
	pr.fill(res)
	if sol.Values != nil && (sol.Status == solver.StatusOptimal || sol.Status == solver.StatusTimeLimit) {
		res.Cover = recover(sol.Values)
		res.Validated = IsBicliqueCover(g, res.Cover)
	}
	logResult(g, res)
	return res, nil
}

func logResult(g *mbcgraph.Graph, res *Result) {
	log.WithFields(log.Fields{
		"model":     res.Model,
		"nodes":     g.NumNodes(),
		"edges":     g.NumEdges(),
		"status":    res.Status.String(),
		"objective": res.Objective,
		"bound":     res.Bound,
		"time":      res.SolveTime,
		"validated": res.Validated,
	}).Info("formulation solved")
}
