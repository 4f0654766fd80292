package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"minimum_biclique_cover/src/bounds"
	"minimum_biclique_cover/src/config"
	"minimum_biclique_cover/src/mbc"
	"minimum_biclique_cover/src/mbcgraph"
	"minimum_biclique_cover/src/report"
	"minimum_biclique_cover/src/solver"
	solverhighs "minimum_biclique_cover/src/solver/highs"
	solverlpsolve "minimum_biclique_cover/src/solver/lpsolve"
)

func main() {
	var configPath, graphPath, model, backend, lbMethod, ubMethod, lpPath, logsDir, reportsDir string
	var k, timeLimit int
	var edgeFix, warmStart, bottomUp, relaxed, cliqueCuts, verbose bool

	flag.StringVar(&configPath, "config", "", "Run the report described by a JSON configuration file")
	flag.StringVar(&graphPath, "graph", "", "Solve a single graph file (GML or edge list)")
	flag.StringVar(&model, "model", "natural", "The formulation: natural, edge, extended or cg")
	flag.StringVar(&backend, "solver", "highs", "The solve backend: highs, lpsolve or branchbound")
	flag.StringVar(&lbMethod, "lb", string(bounds.LBIndependentEdges), "The lower bound method")
	flag.StringVar(&ubMethod, "ub", string(bounds.UBVertex), "The upper bound method")
	flag.IntVar(&k, "k", 0, "Override the biclique budget")
	flag.IntVar(&timeLimit, "timelimit", 0, "Time limit in seconds, 0 for none")
	flag.BoolVar(&edgeFix, "edgefix", false, "Fix an independent edge per biclique slot")
	flag.BoolVar(&warmStart, "warmstart", false, "Warm start from the star cover heuristic")
	flag.BoolVar(&bottomUp, "bottomup", false, "Probe growing budgets from the lower bound")
	flag.BoolVar(&relaxed, "relaxed", false, "Relax the extended formulation")
	flag.BoolVar(&cliqueCuts, "cliquecuts", false, "Add maximal clique inequalities (natural)")
	flag.StringVar(&lpPath, "lp", "", "Write the model as an LP file instead of solving")
	flag.StringVar(&logsDir, "logs", "logs", "The result log directory")
	flag.StringVar(&reportsDir, "reports", "report", "The CSV report directory")
	flag.BoolVar(&verbose, "v", false, "Log at debug level")

	flag.Parse()

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if configPath == "" && graphPath == "" {
		fmt.Fprintln(os.Stderr, "Must specify a run configuration or a graph")
		os.Exit(1)
	}

	if configPath != "" {
		if err := runReport(configPath, logsDir, reportsDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error for configuration \"%v\": %v\n", configPath, err)
			os.Exit(1)
		}
		return
	}

	params := mbc.RunParams{
		LBMethod:           bounds.LBMethod(lbMethod),
		UBMethod:           bounds.UBMethod(ubMethod),
		K:                  k,
		EdgeFix:            edgeFix,
		WarmStart:          warmStart,
		BottomUp:           bottomUp,
		Relaxed:            relaxed,
		CliqueInequalities: cliqueCuts,
		TimeLimit:          time.Duration(timeLimit) * time.Second,
	}
	if err := runSingle(graphPath, model, backend, lpPath, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error for graph \"%v\": %v\n", graphPath, err)
		os.Exit(1)
	}
}

func backendFor(name string) (solver.Interface, error) {
	switch name {
	case "highs":
		return solverhighs.Solver{}, nil
	case "lpsolve":
		return solverlpsolve.Solver{}, nil
	case "branchbound":
		return solver.BranchBound{}, nil
	}
	return nil, fmt.Errorf("unsupported solver backend %q", name)
}

func runParams(rc config.RunConfig) mbc.RunParams {
	return mbc.RunParams{
		LBMethod:           bounds.LBMethod(rc.LBMethod),
		UBMethod:           bounds.UBMethod(rc.UBMethod),
		K:                  rc.K,
		EdgeFix:            rc.EdgeFix,
		WarmStart:          rc.WarmStart,
		BottomUp:           rc.BottomUp,
		Relaxed:            rc.Relaxed,
		CliqueInequalities: rc.CliqueInequalities,
		TimeLimit:          rc.TimeLimitDuration(),
	}
}

// runSingle solves one graph ad hoc, or dumps its model as an LP file.
func runSingle(graphPath, model, backend, lpPath string, params mbc.RunParams) error {
	g, err := mbcgraph.Load(graphPath)
	if err != nil {
		return err
	}
	slv, err := backendFor(backend)
	if err != nil {
		return err
	}
	form, err := mbc.NewFormulation(model, params)
	if err != nil {
		return err
	}

	if lpPath != "" {
		builder, ok := form.(mbc.ModelBuilder)
		if !ok {
			return fmt.Errorf("formulation %q does not build a single model", model)
		}
		m, err := builder.BuildModel(g, slv)
		if err != nil {
			return err
		}
		f, err := os.Create(lpPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return solver.WriteLPFile(f, m)
	}

	fmt.Printf("Solving %v...\n", graphPath)
	res, err := form.Solve(g, slv)
	if err != nil {
		return err
	}
	fmt.Printf("Model %v, status %v\n", res.Model, res.Status)
	fmt.Printf("Objective: %v, bound: %v, k: %v, lb: %v\n", res.Objective, res.Bound, res.K, res.LowerBound)
	fmt.Printf("Solve time: %v\n", res.SolveTime)
	if res.Cover != nil {
		fmt.Printf("Is biclique cover? %v\n", verdict(res.Validated))
	}
	return nil
}

// runReport runs every configured experiment sequentially: one graph, one
// model, one blocking solve, one row. A failing run aborts the loop but
// the rows finished so far are still saved.
func runReport(configPath, logsDir, reportsDir string) error {
	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}
	slv, err := backendFor(cfg.Solver)
	if err != nil {
		return err
	}
	store := mbcgraph.NewStore(cfg.GraphsDir)
	rep := report.New(cfg.ResolvedName())
	runLogsDir := filepath.Join(logsDir, cfg.ResolvedName())

	if cfg.RunConfigs[0].Model == "cg" {
		err = columnGenerationReport(cfg, store, slv, rep, runLogsDir)
	} else {
		err = modelComparisonReport(cfg, store, slv, rep, runLogsDir)
	}
	if err != nil {
		log.WithError(err).Error("run aborted, saving partial report")
		if saveErr := rep.SaveCSVCleanup(reportsDir); saveErr != nil {
			log.WithError(saveErr).Error("could not save partial report")
		}
		return err
	}
	return rep.SaveCSV(reportsDir)
}

func modelComparisonReport(cfg *config.ReportConfig, store *mbcgraph.Store, slv solver.Interface, rep *report.Report, logsDir string) error {
	rep.AddProperties([]string{"Model", "k", "t_k", "LB", "UB", "time"}, false)
	for _, rc := range cfg.RunConfigs {
		res, g, err := runOne(rc, store, slv, logsDir)
		if err != nil {
			return err
		}
		rep.AddGraphData(g, rc.GraphName())
		rep.Set("Model", rc.Model)
		rep.Set("k", res.K)
		rep.Set("t_k", res.KTime)
		rep.Set("LB", res.Bound)
		rep.Set("UB", res.Objective)
		rep.Set("time", res.SolveTime)
	}
	return nil
}

func columnGenerationReport(cfg *config.ReportConfig, store *mbcgraph.Store, slv solver.Interface, rep *report.Report, logsDir string) error {
	rep.AddProperties([]string{"model", "columns_added", "obj_val", "master_time", "pricing_time", "total_time"}, false)
	for _, rc := range cfg.RunConfigs {
		res, g, err := runOne(rc, store, slv, logsDir)
		if err != nil {
			return err
		}
		rep.AddGraphData(g, rc.GraphName())
		rep.Set("model", rc.Model)
		rep.Set("columns_added", res.ColumnsAdded)
		rep.Set("obj_val", res.Objective)
		rep.Set("master_time", res.MasterTime)
		rep.Set("pricing_time", res.PricingTime)
		rep.Set("total_time", res.SolveTime)
	}
	return nil
}

func runOne(rc config.RunConfig, store *mbcgraph.Store, slv solver.Interface, logsDir string) (*mbc.Result, *mbcgraph.Graph, error) {
	log.WithFields(log.Fields{"graph": rc.Graph, "model": rc.Model}).Info("running configuration")
	g, err := store.Load(rc.Graph)
	if err != nil {
		return nil, nil, err
	}
	form, err := mbc.NewFormulation(rc.Model, runParams(rc))
	if err != nil {
		return nil, nil, err
	}
	res, err := form.Solve(g, slv)
	if err != nil {
		return nil, nil, err
	}
	if err := writeResultLog(logsDir, rc, g, res); err != nil {
		log.WithError(err).Warn("could not write result log")
	}
	return res, g, nil
}

// writeResultLog records one run's verdict in
// <logs>/<model>_<graph>_result.log.
func writeResultLog(dir string, rc config.RunConfig, g *mbcgraph.Graph, res *mbc.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	fpath := filepath.Join(dir, fmt.Sprintf("%s_%s_result.log", rc.Model, rc.GraphName()))
	f, err := os.Create(fpath)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "GRAPH: %s\n", rc.GraphName())
	fmt.Fprintf(f, "NODES: %d\n", g.NumNodes())
	fmt.Fprintf(f, "EDGES: %d\n\n", g.NumEdges())
	switch res.Status {
	case solver.StatusOptimal:
		fmt.Fprintf(f, "IS BICLIQUE COVER? %s\n", verdict(res.Validated))
	case solver.StatusTimeLimit:
		fmt.Fprintf(f, "MODEL REACHED TIME LIMIT OF %v SECONDS\n", rc.TimeLimit)
	case solver.StatusInfeasible:
		fmt.Fprintln(f, "MODEL HAS BEEN MARKED AS UNFEASIBLE")
	default:
		fmt.Fprintf(f, "STATUS: %v\n", res.Status)
	}
	return nil
}

func verdict(ok bool) string {
	if ok {
		return "Y"
	}
	return "N"
}
