// Package report tabulates experiment results: one row per graph run,
// property columns with optional timing twins, saved as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"minimum_biclique_cover/src/mbcgraph"
)

const timeSuffix = "_time"

// Report accumulates rows of property values. AddGraphData opens a row;
// Set and RunTimed fill it.
type Report struct {
	Name string

	columns []string
	known   map[string]bool
	rows    []map[string]string
}

func New(name string) *Report {
	return &Report{
		Name:    name,
		columns: []string{"graph", "nodes", "edges"},
		known:   make(map[string]bool),
	}
}

// AddProperties registers the property columns. With withTime each
// property also gets a <property>_time twin filled by RunTimed.
func (r *Report) AddProperties(props []string, withTime bool) {
	for _, p := range props {
		r.columns = append(r.columns, p)
		r.known[p] = true
		if withTime {
			r.columns = append(r.columns, p+timeSuffix)
			r.known[p+timeSuffix] = true
		}
	}
}

// AddGraphData starts a new row labelled with the graph name and its node
// and edge counts.
func (r *Report) AddGraphData(g *mbcgraph.Graph, name string) {
	row := map[string]string{
		"graph": name,
		"nodes": strconv.Itoa(g.NumNodes()),
		"edges": strconv.Itoa(g.NumEdges()),
	}
	r.rows = append(r.rows, row)
}

// Set writes one property value into the current row.
func (r *Report) Set(p string, value any) error {
	if !r.known[p] {
		return errors.Errorf("unknown report property %q", p)
	}
	if len(r.rows) == 0 {
		return errors.New("no current row, call AddGraphData first")
	}
	r.rows[len(r.rows)-1][p] = format(value)
	return nil
}

// RunTimed runs f, stores its value under p and the elapsed seconds under
// the timing twin.
func (r *Report) RunTimed(p string, f func() (any, error)) error {
	start := time.Now()
	value, err := f()
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	if err := r.Set(p, value); err != nil {
		return err
	}
	return r.Set(p+timeSuffix, elapsed)
}

// SaveCSV writes the report into dir as <name>.csv, creating the
// directory if needed.
func (r *Report) SaveCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating report directory %s", dir)
	}
	fpath := filepath.Join(dir, r.Name+".csv")
	f, err := os.Create(fpath)
	if err != nil {
		return errors.Wrapf(err, "creating report %s", fpath)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(r.columns); err != nil {
		return errors.Wrap(err, "writing report header")
	}
	for _, row := range r.rows {
		record := make([]string, len(r.columns))
		for i, col := range r.columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "writing report row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flushing report")
}

// SaveCSVCleanup drops the trailing row when it is incomplete, then saves:
// the report of an aborted run keeps its finished rows.
func (r *Report) SaveCSVCleanup(dir string) error {
	if n := len(r.rows); n > 0 && r.incomplete(r.rows[n-1]) {
		r.rows = r.rows[:n-1]
	}
	return r.SaveCSV(dir)
}

func (r *Report) incomplete(row map[string]string) bool {
	for _, col := range r.columns {
		if _, ok := row[col]; !ok {
			return true
		}
	}
	return false
}

func format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Duration:
		return strconv.FormatFloat(v.Seconds(), 'f', 6, 64)
	}
	return fmt.Sprint(value)
}
