package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"minimum_biclique_cover/src/mbcgraph"
)

// multipartiteName mirrors the store naming of the corpus: edge
// probability prefix, partition type, partition sizes.
func multipartiteName(sizes []int, edgeProb float64) string {
	s := new(strings.Builder)
	if edgeProb >= 1 {
		s.WriteString("complete")
	} else {
		fmt.Fprintf(s, "%d", int(edgeProb*100))
	}
	switch len(sizes) {
	case 2:
		s.WriteString("-bipartite")
	case 3:
		s.WriteString("-tripartite")
	default:
		fmt.Fprintf(s, "-%d-multipartite", len(sizes))
	}
	for _, size := range sizes {
		fmt.Fprintf(s, "_%d", size)
	}
	return s.String()
}

func generateMultipartite(store *mbcgraph.Store, rng *rand.Rand, minParts, maxParts, perCount, minVertices, maxVertices int, edgeProb float64) error {
	for n := minParts; n < maxParts; n++ {
		for i := 0; i < perCount; i++ {
			sizes := make([]int, n)
			for j := range sizes {
				sizes[j] = minVertices + rng.Intn(maxVertices-minVertices+1)
			}
			g := mbcgraph.Multipartite(sizes, edgeProb, rng)
			if err := store.Save(multipartiteName(sizes, edgeProb), g); err != nil {
				return err
			}
		}
	}
	return nil
}

func generateFromIndependentSets(store *mbcgraph.Store, rng *rand.Rand, n, r, minSize, maxSize, count int) error {
	for i := 0; i < count; i++ {
		sets, err := mbcgraph.RandomIndependentSets(n, r, minSize, maxSize, rng)
		if err != nil {
			return err
		}
		g := mbcgraph.FromIndependentSets(sets)
		name := fmt.Sprintf("from_indep_set_n%d_r%d_%d", n, r, i)
		if err := store.Save(name, g); err != nil {
			return err
		}
	}
	return nil
}

func generateSOSk(store *mbcgraph.Store, bps, k int) error {
	g, err := mbcgraph.SOSkConflictGraph(bps, k)
	if err != nil {
		return err
	}
	return store.Save(fmt.Sprintf("sos%d_conflict_bps%d", k, bps), g)
}

func main() {
	var outDir, kind string
	var seed int64
	var minParts, maxParts, perCount, minVertices, maxVertices int
	var edgeProb float64
	var nodes, sets, minSize, maxSize, count int
	var bps, sosK int

	flag.StringVar(&outDir, "out", "graph", "The graph store directory")
	flag.StringVar(&kind, "kind", "", "The graph family: multipartite, indepsets or sosk")
	flag.Int64Var(&seed, "seed", 1, "The random seed")
	flag.IntVar(&minParts, "minparts", 2, "Smallest number of partitions (multipartite)")
	flag.IntVar(&maxParts, "maxparts", 4, "Largest number of partitions, exclusive (multipartite)")
	flag.IntVar(&perCount, "percount", 1, "Graphs per partition count (multipartite)")
	flag.IntVar(&minVertices, "minvertices", 3, "Minimum partition size (multipartite)")
	flag.IntVar(&maxVertices, "maxvertices", 10, "Maximum partition size (multipartite)")
	flag.Float64Var(&edgeProb, "p", 1.0, "Edge probability (multipartite)")
	flag.IntVar(&nodes, "nodes", 0, "Number of vertices (indepsets)")
	flag.IntVar(&sets, "sets", 0, "Number of independent sets (indepsets)")
	flag.IntVar(&minSize, "minsize", 1, "Minimum set size (indepsets)")
	flag.IntVar(&maxSize, "maxsize", 0, "Maximum set size, 0 for the vertex count (indepsets)")
	flag.IntVar(&count, "count", 1, "Number of graphs to generate (indepsets)")
	flag.IntVar(&bps, "bps", 0, "Number of breakpoints (sosk)")
	flag.IntVar(&sosK, "k", 0, "Window size (sosk)")

	flag.Parse()

	failed := false
	switch kind {
	case "multipartite":
		if minParts < 2 || maxParts <= minParts {
			fmt.Fprintln(os.Stderr, "Must specify a valid partition count range")
			failed = true
		}
		if edgeProb <= 0 || edgeProb > 1 {
			fmt.Fprintln(os.Stderr, "Edge probability must lie in (0, 1]")
			failed = true
		}
	case "indepsets":
		if nodes == 0 {
			fmt.Fprintln(os.Stderr, "Must specify the number of vertices")
			failed = true
		}
		if sets == 0 {
			fmt.Fprintln(os.Stderr, "Must specify the number of independent sets")
			failed = true
		}
	case "sosk":
		if bps == 0 {
			fmt.Fprintln(os.Stderr, "Must specify the number of breakpoints")
			failed = true
		}
		if sosK == 0 {
			fmt.Fprintln(os.Stderr, "Must specify the window size")
			failed = true
		}
	case "":
		fmt.Fprintln(os.Stderr, "Must specify a graph family")
		failed = true
	default:
		fmt.Fprintf(os.Stderr, "Unknown graph family %q\n", kind)
		failed = true
	}
	if failed {
		os.Exit(1)
	}

	store := mbcgraph.NewStore(outDir)
	rng := rand.New(rand.NewSource(seed))

	var err error
	switch kind {
	case "multipartite":
		err = generateMultipartite(store, rng, minParts, maxParts, perCount, minVertices, maxVertices, edgeProb)
	case "indepsets":
		err = generateFromIndependentSets(store, rng, nodes, sets, minSize, maxSize, count)
	case "sosk":
		err = generateSOSk(store, bps, sosK)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error while generating graphs: %v\n", err)
		os.Exit(1)
	}
}
