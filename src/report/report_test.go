package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minimum_biclique_cover/src/mbcgraph"
)

func k3() *mbcgraph.Graph {
	g := mbcgraph.New()
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 2)
	return g
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestReportSaveCSV(t *testing.T) {
	rep := New("sample")
	rep.AddProperties([]string{"Model", "UB"}, false)
	rep.AddGraphData(k3(), "triangle")
	require.NoError(t, rep.Set("Model", "edge"))
	require.NoError(t, rep.Set("UB", 2.0))

	dir := t.TempDir()
	require.NoError(t, rep.SaveCSV(dir))

	records := readCSV(t, filepath.Join(dir, "sample.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"graph", "nodes", "edges", "Model", "UB"}, records[0])
	assert.Equal(t, []string{"triangle", "3", "3", "edge", "2"}, records[1])
}

func TestReportSetUnknownProperty(t *testing.T) {
	rep := New("sample")
	rep.AddProperties([]string{"LB"}, false)
	rep.AddGraphData(k3(), "triangle")
	assert.Error(t, rep.Set("UB", 1))
}

func TestReportSetWithoutRow(t *testing.T) {
	rep := New("sample")
	rep.AddProperties([]string{"LB"}, false)
	assert.Error(t, rep.Set("LB", 1))
}

func TestReportRunTimed(t *testing.T) {
	rep := New("sample")
	rep.AddProperties([]string{"match"}, true)
	rep.AddGraphData(k3(), "triangle")
	require.NoError(t, rep.RunTimed("match", func() (any, error) {
		time.Sleep(time.Millisecond)
		return 1, nil
	}))

	dir := t.TempDir()
	require.NoError(t, rep.SaveCSV(dir))
	records := readCSV(t, filepath.Join(dir, "sample.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"graph", "nodes", "edges", "match", "match_time"}, records[0])
	assert.Equal(t, "1", records[1][3])
	assert.NotEmpty(t, records[1][4])
}

func TestReportSaveCSVCleanup(t *testing.T) {
	rep := New("sample")
	rep.AddProperties([]string{"LB"}, false)
	rep.AddGraphData(k3(), "first")
	require.NoError(t, rep.Set("LB", 2))
	// the trailing row was never filled, an aborted run drops it
	rep.AddGraphData(k3(), "second")

	dir := t.TempDir()
	require.NoError(t, rep.SaveCSVCleanup(dir))
	records := readCSV(t, filepath.Join(dir, "sample.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[1][0])
}

func TestReportFormatsDurationsAsSeconds(t *testing.T) {
	rep := New("sample")
	rep.AddProperties([]string{"time"}, false)
	rep.AddGraphData(k3(), "triangle")
	require.NoError(t, rep.Set("time", 1500*time.Millisecond))

	dir := t.TempDir()
	require.NoError(t, rep.SaveCSV(dir))
	records := readCSV(t, filepath.Join(dir, "sample.csv"))
	assert.Equal(t, "1.500000", records[1][3])
}
