package solver

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/cutstock/internal/geometry"
	"github.com/piwi3910/cutstock/internal/guillotine"
	"github.com/piwi3910/cutstock/internal/model"
)

// geneticConfig holds the tunable parameters of the genetic meta-heuristic.
type geneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// defaultGeneticConfig returns sensible default parameters, scaled up for
// larger instances.
func defaultGeneticConfig(pieceCount int) geneticConfig {
	cfg := geneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
	if pieceCount > 20 {
		cfg.Generations = 150
	}
	if pieceCount > 50 {
		cfg.Generations = 200
		cfg.PopulationSize = 80
	}
	return cfg
}

// gene is one placement decision: which piece (index into the shared pieces
// slice) goes next, and whether to try it rotated first.
type gene struct {
	pieceIndex int
	rotated    bool
}

// chromosome is a candidate solution: a permutation of pieces plus a
// per-piece rotation preference.
type chromosome struct {
	genes   []gene
	fitness float64
}

// geneticOptimizer packs a fixed piece list through the real guillotine.Bin
// using a genetic search over placement order and rotation preference.
type geneticOptimizer struct {
	stockW, stockH int
	kerf           int
	allowRotation  bool
	pieces         []geometry.Piece
	config         geneticConfig
	rng            *rand.Rand
}

func newGeneticOptimizer(stockW, stockH, kerf int, allowRotation bool, pieces []geometry.Piece, config geneticConfig, seed int64) *geneticOptimizer {
	return &geneticOptimizer{
		stockW:        stockW,
		stockH:        stockH,
		kerf:          kerf,
		allowRotation: allowRotation,
		pieces:        pieces,
		config:        config,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// run evolves the population and returns the best bin packing found, plus
// the piece-index tracking needed to recover part identity.
func (g *geneticOptimizer) run() ([]*guillotine.Bin, [][]int) {
	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)
			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)
			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})

	return g.decode(population[0])
}

func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.pieces)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			genes[j] = gene{
				pieceIndex: perm[j],
				rotated:    g.allowRotation && g.rng.Float64() < 0.5,
			}
		}
		population[i] = chromosome{genes: genes}
	}

	// Seed one chromosome with the decreasing-longest-side order, mirroring
	// the greedy heuristic, to give the search a competitive starting point.
	if g.config.PopulationSize > 0 {
		genes := make([]gene, n)
		for i := range genes {
			genes[i] = gene{pieceIndex: i, rotated: false}
		}
		population[0] = chromosome{genes: genes}
	}

	return population
}

// evaluate decodes a chromosome and scores it: fewer sheets wins, ties
// broken by a fuller last sheet, mirroring betterGreedy's comparison.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	bins, _ := g.decode(c)
	if len(bins) == 0 {
		return 0
	}
	sol := binsToSolution(bins, g.stockW, g.stockH)
	last := lastSheetUsedArea(sol)
	return -float64(len(bins))*1e9 + float64(last)
}

// decode packs the chromosome's piece order into bins via Best Area Fit,
// passing each piece in its preferred orientation (FindBest also scores the
// other orientation and keeps the preferred one on equal score), opening a
// fresh bin when no open bin fits. Each placement's Rotated flag is
// relative to the piece's own W×H. Returns the bins plus parallel
// part-index tracking per placement slot.
func (g *geneticOptimizer) decode(c chromosome) ([]*guillotine.Bin, [][]int) {
	var bins []*guillotine.Bin
	var idx [][]int

	for _, gn := range c.genes {
		piece := g.pieces[gn.pieceIndex]
		w, h := piece.W, piece.H
		swapped := gn.rotated && g.allowRotation && piece.W != piece.H
		if swapped {
			w, h = piece.H, piece.W
		}

		bestBin := -1
		var bestCandidate guillotine.Candidate
		found := false

		for bi, bin := range bins {
			cand, ok := bin.FindBest(w, h, guillotine.BestAreaFit)
			if !ok {
				continue
			}
			if !found || cand.Score < bestCandidate.Score {
				bestBin = bi
				bestCandidate = cand
				found = true
			}
		}

		if !found {
			bin := guillotine.New(g.stockW, g.stockH, g.kerf, g.allowRotation)
			cand, ok := bin.FindBest(w, h, guillotine.BestAreaFit)
			if !ok {
				continue
			}
			cand.Rotated = cand.Rotated != swapped
			bin.Place(cand)
			bins = append(bins, bin)
			idx = append(idx, []int{piece.Index})
			continue
		}

		bestCandidate.Rotated = bestCandidate.Rotated != swapped
		bins[bestBin].Place(bestCandidate)
		idx[bestBin] = append(idx[bestBin], piece.Index)
	}

	return bins, idx
}

func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1): a contiguous segment
// copies from parent1, the rest fills in parent2's relative order.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].pieceIndex] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.pieceIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	if g.allowRotation && g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		c.genes[i].rotated = !c.genes[i].rotated
	}

	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

func copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// geneticSeed is fixed so repeated solves of the same demand list are
// reproducible; callers wanting variety can re-run with jittered settings.
const geneticSeed = 42

// geneticOptimize runs the genetic meta-heuristic over an already expanded
// and sorted piece list and zips the result back into a labeled
// model.OptimizeResult.
func geneticOptimize(parts []model.Part, pieces []geometry.Piece, stock model.StockSheet, settings model.CutSettings) model.OptimizeResult {
	config := defaultGeneticConfig(len(pieces))
	ga := newGeneticOptimizer(stock.Width, stock.Height, settings.KerfWidth, settings.AllowRotation, pieces, config, geneticSeed)
	bins, idx := ga.run()
	return buildResult(parts, stock, bins, idx)
}
