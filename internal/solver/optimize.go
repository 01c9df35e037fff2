package solver

import (
	"sort"

	"github.com/piwi3910/cutstock/internal/geometry"
	"github.com/piwi3910/cutstock/internal/guillotine"
	"github.com/piwi3910/cutstock/internal/model"
)

// Optimize packs a labeled part list onto copies of a single stock sheet
// per settings.Algorithm, and reports a full model.OptimizeResult with part
// identity (ID/label) preserved in every placement. This is the bridge
// between the core W×H solver (package-private, geometry-only) and the
// named domain model consumed by the importer, exporters, and CLI.
func Optimize(parts []model.Part, stock model.StockSheet, settings model.CutSettings) model.OptimizeResult {
	demands := make([]geometry.Demand, len(parts))
	for i, p := range parts {
		demands[i] = geometry.Demand{W: p.Width, H: p.Height, Qty: p.Quantity}
	}

	if err := validate(stock.Width, stock.Height, demands, settings.KerfWidth); err != nil {
		return model.OptimizeResult{UnplacedParts: append([]model.Part(nil), parts...)}
	}

	pieces := expandAndSort(demands)
	if len(pieces) == 0 {
		return model.OptimizeResult{}
	}

	if err := checkFeasible(pieces, stock.Width, stock.Height, settings.AllowRotation); err != nil {
		return model.OptimizeResult{UnplacedParts: append([]model.Part(nil), parts...)}
	}

	if settings.Algorithm == model.AlgorithmGenetic {
		return geneticOptimize(parts, pieces, stock, settings)
	}

	bins, idx := bestGreedyLabeled(stock.Width, stock.Height, settings.KerfWidth, settings.AllowRotation, pieces)

	if settings.Algorithm == model.AlgorithmBranchAndBound || len(pieces) <= maxExactPieces {
		exactBins, exactIdx := packExactLabeled(stock.Width, stock.Height, settings.KerfWidth, settings.AllowRotation, pieces, bins, idx)
		if len(exactBins) < len(bins) {
			bins, idx = exactBins, exactIdx
		}
	}

	return buildResult(parts, stock, bins, idx)
}

// bestGreedyLabeled runs all three guillotine scoring strategies and keeps
// the bin list with fewer sheets, breaking ties by a fuller last sheet,
// tracking which original part index landed in each placement slot.
func bestGreedyLabeled(stockW, stockH, kerf int, allowRotation bool, pieces []geometry.Piece) ([]*guillotine.Bin, [][]int) {
	strategies := []guillotine.Strategy{guillotine.BestAreaFit, guillotine.BestShortSideFit, guillotine.BestLongSideFit}

	var bestBins []*guillotine.Bin
	var bestIdx [][]int
	var bestSolution geometry.Solution
	haveBest := false

	for _, strategy := range strategies {
		bins, idx := packGreedyLabeled(stockW, stockH, kerf, allowRotation, pieces, strategy)
		sol := binsToSolution(bins, stockW, stockH)
		if betterGreedy(sol, bestSolution, haveBest) {
			bestBins, bestIdx, bestSolution, haveBest = bins, idx, sol, true
		}
	}

	return bestBins, bestIdx
}

// packGreedyLabeled mirrors runGreedy, additionally recording the demand
// index placed into each bin slot so the caller can recover part identity.
func packGreedyLabeled(stockW, stockH, kerf int, allowRotation bool, pieces []geometry.Piece, strategy guillotine.Strategy) ([]*guillotine.Bin, [][]int) {
	var bins []*guillotine.Bin
	var idx [][]int

	for _, p := range pieces {
		bestBin := -1
		var bestCandidate guillotine.Candidate
		found := false

		for bi, bin := range bins {
			c, ok := bin.FindBest(p.W, p.H, strategy)
			if !ok {
				continue
			}
			if !found || c.Score < bestCandidate.Score {
				bestBin = bi
				bestCandidate = c
				found = true
			}
		}

		if !found {
			bin := guillotine.New(stockW, stockH, kerf, allowRotation)
			c, ok := bin.FindBest(p.W, p.H, strategy)
			if !ok {
				continue
			}
			bin.Place(c)
			bins = append(bins, bin)
			idx = append(idx, []int{p.Index})
			continue
		}

		bins[bestBin].Place(bestCandidate)
		idx[bestBin] = append(idx[bestBin], p.Index)
	}

	return bins, idx
}

// packExactLabeled is an index-tracking counterpart to runBranchAndBound:
// it explores the same search space (one piece per depth, every bin or a
// fresh one as a branch) but carries the demand index alongside each bin so
// the winning assignment can be translated back into labeled placements.
func packExactLabeled(stockW, stockH, kerf int, allowRotation bool, pieces []geometry.Piece, greedyBins []*guillotine.Bin, greedyIdx [][]int) ([]*guillotine.Bin, [][]int) {
	if len(pieces) > maxExactPieces {
		return greedyBins, greedyIdx
	}

	e := &exactEngine{
		stockW:        stockW,
		stockH:        stockH,
		kerf:          kerf,
		allowRotation: allowRotation,
		pieces:        pieces,
		ub:            len(greedyBins),
		bestBins:      greedyBins,
		bestIdx:       greedyIdx,
	}

	e.search(nil, nil, 0)
	return e.bestBins, e.bestIdx
}

type exactEngine struct {
	stockW, stockH int
	kerf           int
	allowRotation  bool
	pieces         []geometry.Piece

	ub       int
	bestBins []*guillotine.Bin
	bestIdx  [][]int
}

func (e *exactEngine) search(bins []*guillotine.Bin, idx [][]int, i int) {
	if i == len(e.pieces) {
		if len(bins) < e.ub {
			e.ub = len(bins)
			e.bestBins = cloneBins(bins)
			e.bestIdx = cloneIdx(idx)
		}
		return
	}

	k := len(bins)
	if k >= e.ub {
		return
	}

	remaining := e.pieces[i:]
	areaRemaining := 0
	for _, p := range remaining {
		areaRemaining += p.Area()
	}
	areaFree := 0
	for _, b := range bins {
		areaFree += b.FreeArea()
	}
	panelArea := e.stockW * e.stockH
	extra := 0
	if deficit := areaRemaining - areaFree; deficit > 0 {
		extra = (deficit + panelArea - 1) / panelArea
	}
	if k+extra >= e.ub {
		return
	}

	piece := remaining[0]
	children := e.enumerateChildren(bins, piece)

	for _, child := range children {
		nextBins := make([]*guillotine.Bin, len(bins), len(bins)+1)
		copy(nextBins, bins)
		nextIdx := make([][]int, len(idx), len(idx)+1)
		copy(nextIdx, idx)

		if child.binIndex == -1 {
			nb := guillotine.New(e.stockW, e.stockH, e.kerf, e.allowRotation)
			nb.Place(child.cand)
			nextBins = append(nextBins, nb)
			nextIdx = append(nextIdx, []int{piece.Index})
		} else {
			nb := bins[child.binIndex].Clone()
			nb.Place(child.cand)
			nextBins[child.binIndex] = nb
			slot := append([]int(nil), idx[child.binIndex]...)
			nextIdx[child.binIndex] = append(slot, piece.Index)
		}

		e.search(nextBins, nextIdx, i+1)
	}
}

func (e *exactEngine) enumerateChildren(bins []*guillotine.Bin, piece geometry.Piece) []bbChild {
	var children []bbChild

	for bi, bin := range bins {
		for _, c := range allCandidates(bin, piece.W, piece.H) {
			children = append(children, bbChild{binIndex: bi, cand: c})
		}
	}

	fresh := guillotine.New(e.stockW, e.stockH, e.kerf, e.allowRotation)
	if c, ok := fresh.FindBest(piece.W, piece.H, guillotine.BestAreaFit); ok {
		children = append(children, bbChild{binIndex: -1, cand: c})
	}

	sort.SliceStable(children, func(i, j int) bool {
		return children[i].cand.Score < children[j].cand.Score
	})

	return children
}

func cloneIdx(idx [][]int) [][]int {
	out := make([][]int, len(idx))
	for i, s := range idx {
		out[i] = append([]int(nil), s...)
	}
	return out
}

// buildResult zips a packed bin list plus its parallel part-index tracking
// into a model.OptimizeResult, propagating every placed part's label/ID.
func buildResult(parts []model.Part, stock model.StockSheet, bins []*guillotine.Bin, idx [][]int) model.OptimizeResult {
	result := model.OptimizeResult{}

	placedQty := make([]int, len(parts))

	for bi, bin := range bins {
		sheet := model.SheetResult{Stock: stock}
		sheet.Stock.Label = stock.Label
		for pi, placement := range bin.Placed {
			partIdx := idx[bi][pi]
			part := parts[partIdx]
			placedQty[partIdx]++
			sheet.Placements = append(sheet.Placements, model.Placement{
				Part:    part,
				X:       placement.X,
				Y:       placement.Y,
				Rotated: placement.Rotated,
			})
		}
		result.Sheets = append(result.Sheets, sheet)
	}

	for i, part := range parts {
		if missing := part.Quantity - placedQty[i]; missing > 0 {
			unplaced := part
			unplaced.Quantity = missing
			result.UnplacedParts = append(result.UnplacedParts, unplaced)
		}
	}

	result.WastePercent = 100.0 - result.TotalEfficiency()
	return result
}
