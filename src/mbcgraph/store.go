package mbcgraph

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Store is a directory of graph files. Graphs are saved as GML; Load and
// Graphs also accept edge-list ".txt" files dropped into the directory by
// hand.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// NamedGraph pairs a graph with its store name (the file name without
// extension), which experiment reports use as the instance label.
type NamedGraph struct {
	Name  string
	Graph *Graph
}

// Filter restricts what Graphs returns. A zero Filter matches everything.
type Filter struct {
	// NamePattern is a regular expression matched against the graph name.
	NamePattern string
	// MaxEdges drops graphs with more edges when positive.
	MaxEdges int
	// MinEdges drops graphs with fewer edges when positive.
	MinEdges int
}

// Save writes g to the store under name, creating the directory if needed.
func (s *Store) Save(name string, g *Graph) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating graph store %s", s.Dir)
	}
	if filepath.Ext(name) == "" {
		name += ".gml"
	}
	if err := SaveGML(filepath.Join(s.Dir, name), g); err != nil {
		return errors.Wrapf(err, "saving graph %s", name)
	}
	return nil
}

// Load reads one graph by store name. The extension may be omitted, in
// which case ".gml" is assumed.
func (s *Store) Load(name string) (*Graph, error) {
	if filepath.Ext(name) == "" {
		name += ".gml"
	}
	g, err := Load(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, errors.Wrapf(err, "loading graph %s", name)
	}
	return g, nil
}

// List returns the store names of every graph file, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading graph store %s", s.Dir)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".gml" || ext == ".txt" {
			names = append(names, strings.TrimSuffix(entry.Name(), ext))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Graphs loads every stored graph passing the filter, in name order.
func (s *Store) Graphs(filter Filter) ([]NamedGraph, error) {
	var pattern *regexp.Regexp
	if filter.NamePattern != "" {
		var err error
		pattern, err = regexp.Compile(filter.NamePattern)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling name pattern %q", filter.NamePattern)
		}
	}
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	graphs := make([]NamedGraph, 0, len(names))
	for _, name := range names {
		if pattern != nil && !pattern.MatchString(name) {
			continue
		}
		g, err := s.Load(name)
		if err != nil {
			return nil, err
		}
		if filter.MaxEdges > 0 && g.NumEdges() > filter.MaxEdges {
			continue
		}
		if filter.MinEdges > 0 && g.NumEdges() < filter.MinEdges {
			continue
		}
		graphs = append(graphs, NamedGraph{Name: name, Graph: g})
	}
	return graphs, nil
}
