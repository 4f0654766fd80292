package bounds

import (
	"math"
	"math/rand"
	"runtime"
	"slices"

	"github.com/tomcraven/goga"

	"minimum_biclique_cover/src/mbcgraph"
)

const geneticPopulation = 500

type edgeSimulator struct {
	edges    []mbcgraph.Edge
	conflict [][]bool
}

func newEdgeSimulator(g *mbcgraph.Graph) *edgeSimulator {
	edges := g.Edges()
	conflict := make([][]bool, len(edges))
	for i := range conflict {
		conflict[i] = make([]bool, len(edges))
	}
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if edgesShareBiclique(g, edges[i], edges[j]) {
				conflict[i][j] = true
				conflict[j][i] = true
			}
		}
	}
	return &edgeSimulator{edges: edges, conflict: conflict}
}

func (s *edgeSimulator) OnBeginSimulation() {}

func (s *edgeSimulator) OnEndSimulation() {}

func (s *edgeSimulator) Simulate(genome goga.Genome) {
	bits := genome.GetBits().GetAll()
	var selected []int
	for i, b := range bits {
		if b == 1 {
			selected = append(selected, i)
		}
	}
	for i := range selected {
		for j := i + 1; j < len(selected); j++ {
			if s.conflict[selected[i]][selected[j]] {
				genome.SetFitness(math.MinInt)
				return
			}
		}
	}
	genome.SetFitness(len(selected))
}

func (s *edgeSimulator) ExitFunc(goga.Genome) bool {
	return false
}

type edgeBitsetCreate struct {
	size int
}

// Go starts from sparse selections, which are mostly feasible.
func (c *edgeBitsetCreate) Go() goga.Bitset {
	bits := goga.Bitset{}
	bits.Create(c.size)
	for i := 0; i < c.size; i++ {
		if rand.Intn(4) == 0 {
			bits.Set(i, 1)
		} else {
			bits.Set(i, 0)
		}
	}
	return bits
}

type eliteTracker struct {
	fitness int
	bits    []int
}

func (t *eliteTracker) OnElite(genome goga.Genome) {
	fitness := genome.GetFitness()
	if fitness == math.MinInt || (t.bits != nil && fitness <= t.fitness) {
		return
	}
	t.fitness = fitness
	t.bits = slices.Clone(genome.GetBits().GetAll())
}

func flipMater(a, b goga.Genome) (goga.Genome, goga.Genome) {
	c1 := a.GetBits().CreateCopy()
	c2 := b.GetBits().CreateCopy()
	flipRandomBit(&c1)
	flipRandomBit(&c2)
	return goga.NewGenome(c1), goga.NewGenome(c2)
}

func flipRandomBit(b *goga.Bitset) {
	if b.GetSize() == 0 {
		return
	}
	i := rand.Intn(b.GetSize())
	b.Set(i, 1-b.Get(i))
}

// GeneticIndependentEdges searches for a large independent edge set with a
// genetic algorithm and returns the best feasible selection found. The run
// stops once the elite fitness has not improved for stopRounds generations.
func GeneticIndependentEdges(g *mbcgraph.Graph, stopRounds int) []mbcgraph.Edge {
	edges := g.Edges()
	if len(edges) == 0 {
		return nil
	}
	sim := newEdgeSimulator(g)
	tracker := &eliteTracker{}

	ga := goga.NewGeneticAlgorithm()
	ga.Simulator = sim
	ga.BitsetCreate = &edgeBitsetCreate{size: len(edges)}
	ga.EliteConsumer = tracker
	ga.Mater = goga.NewMater([]goga.MaterFunctionProbability{
		{P: 0.9, F: goga.TwoPointCrossover, UseElite: true},
		{P: 0.2, F: flipMater},
		{P: 0.9, F: goga.UniformCrossover},
	})
	ga.Selector = goga.NewSelector([]goga.SelectorFunctionProbability{
		{P: 0.9, F: goga.Roulette},
	})
	ga.Init(geneticPopulation, runtime.NumCPU())

	best := math.MinInt
	stale := 0
	ga.SimulateUntil(func(elite goga.Genome) bool {
		fitness := elite.GetFitness()
		if fitness > best {
			best = fitness
			stale = 0
		} else {
			stale++
		}
		return stale >= stopRounds
	})

	var selected []mbcgraph.Edge
	for i, b := range tracker.bits {
		if b == 1 {
			selected = append(selected, edges[i])
		}
	}
	if len(selected) == 0 {
		return []mbcgraph.Edge{edges[0]}
	}
	return selected
}
