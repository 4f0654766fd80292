// Package config reads the JSON run configurations driving the experiment
// harness. Report-level defaults are resolved into every run at load and
// validation failures abort the run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"minimum_biclique_cover/src/bounds"
)

const defaultTimeLimit = 3600

var knownModels = map[string]bool{
	"natural":  true,
	"edge":     true,
	"extended": true,
	"cg":       true,
}

var knownSolvers = map[string]bool{
	"highs":       true,
	"lpsolve":     true,
	"branchbound": true,
}

// RunConfig describes one experiment: a stored graph, a formulation and
// the per-run toggles. Empty fields inherit the report defaults.
type RunConfig struct {
	Graph              string `json:"graph"`
	Model              string `json:"model"`
	LBMethod           string `json:"lb_method"`
	UBMethod           string `json:"ub_method"`
	K                  int    `json:"k"`
	EdgeFix            bool   `json:"edge_fix"`
	WarmStart          bool   `json:"warm_start"`
	BottomUp           bool   `json:"bottom_up"`
	Relaxed            bool   `json:"relaxed"`
	CliqueInequalities bool   `json:"clique_inequalities"`
	// TimeLimit is in seconds; zero inherits the report default.
	TimeLimit int `json:"time_limit"`
}

// GraphName is the store name of the run's graph, the extension stripped.
func (rc RunConfig) GraphName() string {
	base := filepath.Base(rc.Graph)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (rc RunConfig) TimeLimitDuration() time.Duration {
	return time.Duration(rc.TimeLimit) * time.Second
}

// ReportConfig is the top-level document: report naming, the graph store,
// the solver backend, the default twins of every run field and the runs.
type ReportConfig struct {
	ReportName string `json:"report_name"`
	GraphsDir  string `json:"graphs_dir"`
	Solver     string `json:"solver"`

	DefaultLBMethod           string `json:"default_lb_method"`
	DefaultUBMethod           string `json:"default_ub_method"`
	DefaultEdgeFix            bool   `json:"default_edge_fix"`
	DefaultWarmStart          bool   `json:"default_warm_start"`
	DefaultBottomUp           bool   `json:"default_bottom_up"`
	DefaultRelaxed            bool   `json:"default_relaxed"`
	DefaultCliqueInequalities bool   `json:"default_clique_inequalities"`
	DefaultTimeLimit          int    `json:"default_time_limit"`

	RunConfigs []RunConfig `json:"run_configs"`

	resolvedName string
}

// ResolvedName is the report name suffixed with the load timestamp, fixed
// once at load so every artifact of a run shares it.
func (c *ReportConfig) ResolvedName() string { return c.resolvedName }

// Read loads, resolves and validates a report configuration file.
func Read(path string) (*ReportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	var c ReportConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	c.resolve()
	if err := c.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	c.resolvedName = fmt.Sprintf("%s-%d", c.ReportName, time.Now().Unix())
	return &c, nil
}

func (c *ReportConfig) resolve() {
	if c.Solver == "" {
		c.Solver = "highs"
	}
	if c.GraphsDir == "" {
		c.GraphsDir = "graph"
	}
	if c.DefaultLBMethod == "" {
		c.DefaultLBMethod = string(bounds.LBIndependentEdges)
	}
	if c.DefaultUBMethod == "" {
		c.DefaultUBMethod = string(bounds.UBVertex)
	}
	if c.DefaultTimeLimit == 0 {
		c.DefaultTimeLimit = defaultTimeLimit
	}
	for i := range c.RunConfigs {
		rc := &c.RunConfigs[i]
		if rc.LBMethod == "" {
			rc.LBMethod = c.DefaultLBMethod
		}
		if rc.UBMethod == "" {
			rc.UBMethod = c.DefaultUBMethod
		}
		if rc.TimeLimit == 0 {
			rc.TimeLimit = c.DefaultTimeLimit
		}
		rc.EdgeFix = rc.EdgeFix || c.DefaultEdgeFix
		rc.WarmStart = rc.WarmStart || c.DefaultWarmStart
		rc.BottomUp = rc.BottomUp || c.DefaultBottomUp
		rc.Relaxed = rc.Relaxed || c.DefaultRelaxed
		rc.CliqueInequalities = rc.CliqueInequalities || c.DefaultCliqueInequalities
	}
}

func (c *ReportConfig) validate() error {
	if c.ReportName == "" {
		return errors.New("report_name must not be empty")
	}
	if !knownSolvers[c.Solver] {
		return errors.Errorf("unsupported solver %q", c.Solver)
	}
	if len(c.RunConfigs) == 0 {
		return errors.New("run_configs must not be empty")
	}
	// cg reports carry a different column shape than model comparisons
	cg := 0
	for _, rc := range c.RunConfigs {
		if rc.Model == "cg" {
			cg++
		}
	}
	if cg > 0 && cg != len(c.RunConfigs) {
		return errors.New("cg runs cannot be mixed with other models in one report")
	}
	for i, rc := range c.RunConfigs {
		if rc.Graph == "" {
			return errors.Errorf("run %d: graph must not be empty", i)
		}
		if !knownModels[rc.Model] {
			return errors.Errorf("run %d: unsupported model %q", i, rc.Model)
		}
		if _, err := bounds.ParseLBMethod(rc.LBMethod); err != nil {
			return errors.Wrapf(err, "run %d", i)
		}
		if _, err := bounds.ParseUBMethod(rc.UBMethod); err != nil {
			return errors.Wrapf(err, "run %d", i)
		}
		if rc.K < 0 {
			return errors.Errorf("run %d: k must not be negative", i)
		}
		if rc.TimeLimit < 0 {
			return errors.Errorf("run %d: time_limit must not be negative", i)
		}
	}
	return nil
}
