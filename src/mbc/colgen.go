package mbc

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"minimum_biclique_cover/src/bounds"
	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/solver"
)

const (
	cgPriceEps  = 1e-6
	cgMaxRounds = 500
)

// ColumnGeneration prices biclique columns into a restricted set-cover
// master: the master LP's dual prices come from its explicit packing dual
// solved with the pure-Go simplex, the pricing problem is a maximum
// price-weight biclique MIP on the injected backend, and once no column
// prices above one the pool is solved as an integer set cover.
type ColumnGeneration struct {
	Params RunParams
}

func NewColumnGeneration(p RunParams) *ColumnGeneration { return &ColumnGeneration{Params: p} }

func (f *ColumnGeneration) Name() string { return "cg" }

// column is one priced biclique together with its covered edge set.
type column struct {
	biclique Biclique
	edges    []mbcgraph.Edge
}

func (f *ColumnGeneration) Solve(g *mbcgraph.Graph, slv solver.Interface) (*Result, error) {
	if g.NumEdges() == 0 {
		return emptyResult(f.Name()), nil
	}
	start := time.Now()
	opts := f.Params.options()
	deadline := opts.Deadline()
	res := &Result{Model: f.Name()}

	pool, err := f.initialColumns(g, slv, opts)
	if err != nil {
		return nil, err
	}
	res.K = len(pool)
	seen := make(map[string]bool, len(pool))
	for _, c := range pool {
		seen[signature(c.edges)] = true
	}

	edges := g.Edges()
	edgePos := make(map[mbcgraph.Edge]int, len(edges))
	for i, e := range edges {
		edgePos[e] = i
	}

	lpBound := 0.0
	timedOut := false
	converged := false
	for round := 0; round < cgMaxRounds; round++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			timedOut = true
			break
		}
		masterStart := time.Now()
		prices, masterObj, err := dualPrices(edges, edgePos, pool)
		res.MasterTime += time.Since(masterStart)
		if err != nil {
			return nil, err
		}
		lpBound = masterObj

		pricingStart := time.Now()
		bc, weight, err := maxWeightBiclique(g, edges, prices, slv, opts)
		res.PricingTime += time.Since(pricingStart)
		if err != nil {
			return nil, err
		}
		if weight <= 1+cgPriceEps {
			converged = true
			break
		}
		col := column{biclique: bc, edges: bc.Edges()}
		sig := signature(col.edges)
		if seen[sig] {
			break
		}
		seen[sig] = true
		pool = append(pool, col)
		res.ColumnsAdded++
		log.WithFields(log.Fields{
			"round": round, "price": weight, "master": masterObj, "columns": len(pool),
		}).Debug("column priced in")
	}

	sol, err := f.solveSetCover(edges, edgePos, pool, slv, opts)
	if err != nil {
		return nil, err
	}
	res.Status = sol.Status
	if timedOut {
		res.Status = solver.StatusTimeLimit
	}
	res.Objective = sol.Objective
	res.Bound = cgBound(lpBound, converged)
	res.LowerBound = int(res.Bound)
	res.SolveTime = time.Since(start)
	if sol.Values != nil && (sol.Status == solver.StatusOptimal || sol.Status == solver.StatusTimeLimit) {
		for i, c := range pool {
			if sol.Values[i] > 0.5 {
				res.Cover = append(res.Cover, c.biclique)
			}
		}
		res.Validated = IsBicliqueCover(g, res.Cover)
	}
	logResult(g, res)
	return res, nil
}

// initialColumns seeds the pool with the star cover of a minimum vertex
// cover, so the master is feasible from the first round. With EdgeFix the
// independent edges, each grown into a maximum biclique, join the pool.
func (f *ColumnGeneration) initialColumns(g *mbcgraph.Graph, slv solver.Interface, opts solver.Options) ([]column, error) {
	vc, err := bounds.VertexCoverSolution(g, slv, opts)
	if err != nil {
		return nil, err
	}
	var pool []column
	for _, bc := range CoverFromEdgeGroups(StarCover(g, vc)) {
		pool = append(pool, column{biclique: bc, edges: bc.Edges()})
	}
	if f.Params.EdgeFix {
		seeds, err := bounds.IndependentEdges(g, slv, opts)
		if err != nil {
			return nil, err
		}
		groups, err := bounds.ExtendIndependentEdges(g, seeds, slv, opts)
		if err != nil {
			return nil, err
		}
		for _, arcs := range groups {
			edges := make([]mbcgraph.Edge, len(arcs))
			for i, a := range arcs {
				edges[i] = edgeOf(a.From, a.To)
			}
			for _, bc := range CoverFromEdgeGroups([][]mbcgraph.Edge{edges}) {
				pool = append(pool, column{biclique: bc, edges: bc.Edges()})
			}
		}
	}
	return pool, nil
}

// dualPrices solves the packing dual of the restricted master LP: maximize
// the total price of the edges subject to every pooled column pricing at
// most one. Its optimum equals the master cover LP's and its solution
// carries the per-edge dual prices.
func dualPrices(edges []mbcgraph.Edge, edgePos map[mbcgraph.Edge]int, pool []column) ([]float64, float64, error) {
	m := solver.NewModel("cg_master_dual")
	m.Maximize = true
	for _, e := range edges {
		m.AddVar(0, 1, 1, false, fmt.Sprintf("pi_%d_%d", e.U, e.V))
	}
	for i, c := range pool {
		entries := make([]solver.Entry, len(c.edges))
		for j, e := range c.edges {
			entries[j] = solver.Entry{Col: edgePos[e], Val: 1}
		}
		m.AddRow(math.Inf(-1), 1, fmt.Sprintf("col_%d", i), entries...)
	}
	sol, err := solver.Simplex{}.Solve(m, solver.Options{})
	if err != nil {
		return nil, 0, fmt.Errorf("Error while solving the master dual: %v", err)
	}
	if sol.Status != solver.StatusOptimal {
		return nil, 0, fmt.Errorf("Error while solving the master dual: status %v", sol.Status)
	}
	return sol.Values, sol.Objective, nil
}

// maxWeightBiclique finds the biclique maximizing the total price of its
// edges: side binaries per vertex, continuous arc products and the
// complement exclusion keeping the sides fully adjacent.
func maxWeightBiclique(g *mbcgraph.Graph, edges []mbcgraph.Edge, prices []float64, slv solver.Interface, opts solver.Options) (Biclique, float64, error) {
	nodes := g.Nodes()
	arcs := g.Arcs()
	m := solver.NewModel("cg_pricing")
	m.Maximize = true

	x := make(map[int][2]int, len(nodes))
	for _, v := range nodes {
		x[v] = [2]int{
			m.AddBinary(0, fmt.Sprintf("x_%d_0", v)),
			m.AddBinary(0, fmt.Sprintf("x_%d_1", v)),
		}
	}
	y := make(map[mbcgraph.Arc]int, len(arcs))
	price := make(map[mbcgraph.Edge]float64, len(edges))
	for i, e := range edges {
		price[e] = prices[i]
	}
	for _, a := range arcs {
		y[a] = m.AddVar(0, 1, price[edgeOf(a.From, a.To)], false, fmt.Sprintf("y_%d_%d", a.From, a.To))
	}

	for _, v := range nodes {
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: x[v][0], Val: 1},
			solver.Entry{Col: x[v][1], Val: 1})
	}
	for _, a := range arcs {
		m.AddRow(math.Inf(-1), 0, "",
			solver.Entry{Col: y[a], Val: 1},
			solver.Entry{Col: x[a.From][0], Val: -1})
		m.AddRow(math.Inf(-1), 0, "",
			solver.Entry{Col: y[a], Val: 1},
			solver.Entry{Col: x[a.To][1], Val: -1})
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: x[a.From][0], Val: 1},
			solver.Entry{Col: x[a.To][1], Val: 1},
			solver.Entry{Col: y[a], Val: -1})
	}
	for _, a := range g.NonAdjacentArcs() {
		m.AddRow(math.Inf(-1), 1, "",
			solver.Entry{Col: x[a.From][0], Val: 1},
			solver.Entry{Col: x[a.To][1], Val: 1})
	}

	sol, err := slv.Solve(m, opts)
	if err != nil {
		return Biclique{}, 0, fmt.Errorf("Error while solving the pricing model: %v", err)
	}
	if sol.Status != solver.StatusOptimal {
		return Biclique{}, 0, fmt.Errorf("Error while solving the pricing model: status %v", sol.Status)
	}
	var bc Biclique
	for _, v := range nodes {
		if sol.Values[x[v][0]] > 0.5 {
			bc.Left = append(bc.Left, v)
		}
		if sol.Values[x[v][1]] > 0.5 {
			bc.Right = append(bc.Right, v)
		}
	}
	return bc, sol.Objective, nil
}

// solveSetCover runs the integer cover over the pooled columns.
func (f *ColumnGeneration) solveSetCover(edges []mbcgraph.Edge, edgePos map[mbcgraph.Edge]int, pool []column, slv solver.Interface, opts solver.Options) (*solver.Solution, error) {
	m := solver.NewModel("cg_set_cover")
	for i := range pool {
		m.AddBinary(1, fmt.Sprintf("c_%d", i))
	}
	covering := make([][]solver.Entry, len(edges))
	for i, c := range pool {
		for _, e := range c.edges {
			covering[edgePos[e]] = append(covering[edgePos[e]], solver.Entry{Col: i, Val: 1})
		}
	}
	for i, e := range edges {
		m.AddRow(1, math.Inf(1), fmt.Sprintf("cover_%d_%d", e.U, e.V), covering[i]...)
	}
	sol, err := slv.Solve(m, opts)
	if err != nil {
		return nil, fmt.Errorf("Error while solving the pool set cover: %v", err)
	}
	return sol, nil
}

// cgBound is the lower bound a run may publish. The restricted master
// over-estimates the cover LP until pricing converges, so an interrupted
// run keeps the trivial single-biclique bound.
func cgBound(lpBound float64, converged bool) float64 {
	if !converged {
		return 1
	}
	return math.Ceil(lpBound - cgPriceEps)
}

func signature(edges []mbcgraph.Edge) string {
	sorted := slices.Clone(edges)
	slices.SortFunc(sorted, func(a, b mbcgraph.Edge) int {
		if a.U != b.U {
			return a.U - b.U
		}
		return a.V - b.V
	})
	s := new(strings.Builder)
	for _, e := range sorted {
		fmt.Fprintf(s, "%d-%d;", e.U, e.V)
	}
	return s.String()
}
