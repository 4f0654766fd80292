package mbcgraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func errorCoalesce(args ...error) error {
	for _, e := range args {
		if e != nil {
			return e
		}
	}
	return nil
}

type gmlParser struct {
	graph  *Graph
	labels map[int]int
}

// parseRecord consumes one "node [ ... ]" or "edge [ ... ]" block, i.e. the
// key-value lines up to the closing bracket.
func (p *gmlParser) parseRecord(scanner *bufio.Scanner, kind string) error {
	fields := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "]" {
			break
		}
		toks := strings.SplitN(line, " ", 2)
		if len(toks) == 2 {
			fields[toks[0]] = strings.TrimSpace(toks[1])
		}
	}
	switch kind {
	case "node":
		return p.addNode(fields)
	case "edge":
		return p.addEdge(fields)
	}
	return nil
}

func (p *gmlParser) addNode(fields map[string]string) error {
	raw, ok := fields["id"]
	if !ok {
		return fmt.Errorf("Error while parsing gml: node without id")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("Error while parsing gml node id: %v", err)
	}
	label := id
	if rawLabel, ok := fields["label"]; ok {
		if v, err := strconv.Atoi(strings.Trim(rawLabel, `"`)); err == nil {
			label = v
		}
	}
	p.labels[id] = label
	p.graph.AddNode(label)
	return nil
}

func (p *gmlParser) addEdge(fields map[string]string) error {
	source, err := strconv.Atoi(fields["source"])
	if err != nil {
		return fmt.Errorf("Error while parsing gml edge source: %v", err)
	}
	target, err := strconv.Atoi(fields["target"])
	if err != nil {
		return fmt.Errorf("Error while parsing gml edge target: %v", err)
	}
	u, ok := p.labels[source]
	if !ok {
		return fmt.Errorf("Error while parsing gml: edge references unknown node %d", source)
	}
	v, ok := p.labels[target]
	if !ok {
		return fmt.Errorf("Error while parsing gml: edge references unknown node %d", target)
	}
	p.graph.AddEdge(u, v)
	return nil
}

// ReadGML parses the GML dialect the experiment corpus is stored in: a
// single "graph [" block of node and edge records. Node labels are numeric
// and become the vertex IDs; unlabeled nodes fall back to their id field.
func ReadGML(r io.Reader) (*Graph, error) {
	p := &gmlParser{graph: New(), labels: make(map[int]int)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		var err error
		switch {
		case strings.HasPrefix(line, "node"):
			err = p.parseRecord(scanner, "node")
		case strings.HasPrefix(line, "edge"):
			err = p.parseRecord(scanner, "edge")
		}
		if err != nil {
			return nil, err
		}
	}
	return p.graph, errorCoalesce(scanner.Err())
}

// WriteGML writes g in the same dialect ReadGML accepts, with vertex IDs as
// both id and label so a round trip preserves the graph exactly.
func WriteGML(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "graph [")
	for _, v := range g.Nodes() {
		fmt.Fprintln(bw, "  node [")
		fmt.Fprintf(bw, "    id %d\n", v)
		fmt.Fprintf(bw, "    label \"%d\"\n", v)
		fmt.Fprintln(bw, "  ]")
	}
	for _, e := range g.Edges() {
		fmt.Fprintln(bw, "  edge [")
		fmt.Fprintf(bw, "    source %d\n", e.U)
		fmt.Fprintf(bw, "    target %d\n", e.V)
		fmt.Fprintln(bw, "  ]")
	}
	fmt.Fprintln(bw, "]")
	return bw.Flush()
}

// LoadGML reads a graph from a GML file on disk.
func LoadGML(filename string) (*Graph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadGML(file)
}

// SaveGML writes a graph to a GML file, truncating any existing one.
func SaveGML(filename string, g *Graph) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteGML(file, g)
}
