package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadResolvesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"report_name": "comparison",
		"default_edge_fix": true,
		"default_time_limit": 60,
		"run_configs": [
			{"graph": "complete-bipartite_3_4.gml", "model": "natural"},
			{"graph": "c5", "model": "edge", "lb_method": "match", "time_limit": 10, "warm_start": true}
		]
	}`)
	cfg, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "highs", cfg.Solver)
	assert.Equal(t, "graph", cfg.GraphsDir)
	require.Len(t, cfg.RunConfigs, 2)

	first := cfg.RunConfigs[0]
	assert.Equal(t, "independent_edges", first.LBMethod)
	assert.Equal(t, "vertex", first.UBMethod)
	assert.True(t, first.EdgeFix)
	assert.False(t, first.WarmStart)
	assert.Equal(t, 60*time.Second, first.TimeLimitDuration())

	second := cfg.RunConfigs[1]
	assert.Equal(t, "match", second.LBMethod)
	assert.True(t, second.EdgeFix)
	assert.True(t, second.WarmStart)
	assert.Equal(t, 10*time.Second, second.TimeLimitDuration())
}

func TestGraphName(t *testing.T) {
	rc := RunConfig{Graph: "graph/complete-bipartite_3_4.gml"}
	assert.Equal(t, "complete-bipartite_3_4", rc.GraphName())
	rc = RunConfig{Graph: "c5"}
	assert.Equal(t, "c5", rc.GraphName())
}

func TestResolvedName(t *testing.T) {
	path := writeConfig(t, `{
		"report_name": "cg-study",
		"run_configs": [{"graph": "c5", "model": "cg"}]
	}`)
	cfg, err := Read(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cfg.ResolvedName(), "cg-study-"))
	assert.NotEqual(t, "cg-study-", cfg.ResolvedName())
}

func TestReadRejectsInvalidConfigs(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty report name", `{"run_configs": [{"graph": "c5", "model": "edge"}]}`},
		{"no runs", `{"report_name": "r", "run_configs": []}`},
		{"unknown solver", `{"report_name": "r", "solver": "cplex", "run_configs": [{"graph": "c5", "model": "edge"}]}`},
		{"unknown model", `{"report_name": "r", "run_configs": [{"graph": "c5", "model": "quadratic"}]}`},
		{"unknown lb method", `{"report_name": "r", "run_configs": [{"graph": "c5", "model": "edge", "lb_method": "spectral"}]}`},
		{"unknown ub method", `{"report_name": "r", "run_configs": [{"graph": "c5", "model": "edge", "ub_method": "spectral"}]}`},
		{"mixed cg and model runs", `{"report_name": "r", "run_configs": [{"graph": "c5", "model": "cg"}, {"graph": "c5", "model": "edge"}]}`},
		{"missing graph", `{"report_name": "r", "run_configs": [{"model": "edge"}]}`},
		{"negative k", `{"report_name": "r", "run_configs": [{"graph": "c5", "model": "edge", "k": -1}]}`},
		{"negative time limit", `{"report_name": "r", "run_configs": [{"graph": "c5", "model": "edge", "time_limit": -5}]}`},
		{"malformed json", `{"report_name": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
