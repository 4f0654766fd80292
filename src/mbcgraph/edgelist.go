package mbcgraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type edgeListParser struct {
	graph    *Graph
	numEdges int
}

// parseFirstLine reads the header. Only its last token matters: the number
// of edge lines that follow. Anything before it is free-form commentary.
func (p *edgeListParser) parseFirstLine(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("Error while parsing edge list: empty file")
	}
	line := strings.Fields(scanner.Text())
	if len(line) == 0 {
		return fmt.Errorf("Error while parsing edge list: blank first line")
	}
	m, err := strconv.Atoi(line[len(line)-1])
	if err != nil {
		return fmt.Errorf("Error while parsing first line: %v", err)
	}
	p.numEdges = m
	return nil
}

// parseEdges reads exactly numEdges lines of "u v" pairs. Tokens beyond the
// first two on a line are ignored, as are any lines after the declared count.
func (p *edgeListParser) parseEdges(scanner *bufio.Scanner) error {
	for i := 0; i < p.numEdges; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("Error while parsing edge list: expected %d edges, got %d", p.numEdges, i)
		}
		line := strings.Fields(scanner.Text())
		if len(line) < 2 {
			return fmt.Errorf("Error while parsing edge %d: want two endpoints, got %q", i, scanner.Text())
		}
		u, err := strconv.Atoi(line[0])
		if err != nil {
			return fmt.Errorf("Error while parsing edge %d: %v", i, err)
		}
		v, err := strconv.Atoi(line[1])
		if err != nil {
			return fmt.Errorf("Error while parsing edge %d: %v", i, err)
		}
		p.graph.AddEdge(u, v)
	}
	return nil
}

// ReadEdgeList parses the plain-text instance format: a header line ending
// with the edge count, then one edge per line.
func ReadEdgeList(r io.Reader) (*Graph, error) {
	p := &edgeListParser{graph: New()}
	scanner := bufio.NewScanner(r)
	err := errorCoalesce(
		p.parseFirstLine(scanner),
		p.parseEdges(scanner),
		scanner.Err(),
	)
	if err != nil {
		return nil, err
	}
	return p.graph, nil
}

// WriteEdgeList writes g in the format ReadEdgeList accepts.
func WriteEdgeList(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", g.NumNodes(), g.NumEdges())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%d %d\n", e.U, e.V)
	}
	return bw.Flush()
}

// Load reads a graph from disk, choosing the parser by file extension:
// ".gml" for GML, ".txt" for edge lists.
func Load(filename string) (*Graph, error) {
	switch filepath.Ext(filename) {
	case ".gml":
		return LoadGML(filename)
	case ".txt":
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return ReadEdgeList(file)
	}
	return nil, fmt.Errorf("unsupported graph file extension %q", filepath.Ext(filename))
}
