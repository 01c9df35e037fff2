// Package solver orchestrates the guillotine bin to pack a demand list onto
// as few stock panels as possible: a greedy driver that tries three scoring
// strategies, and an exact branch-and-bound driver for small instances.
package solver

import (
	"fmt"

	"github.com/piwi3910/cutstock/internal/geometry"
	"github.com/piwi3910/cutstock/internal/guillotine"
)

// Solve packs demands onto stockW×stockH panels, respecting kerf and the
// rotation permission, and returns the best Solution found. It returns
// ErrInvalidInput for malformed dimensions/quantities/kerf, and
// ErrInfeasible if any single piece cannot fit an empty panel.
func Solve(stockW, stockH int, demands []geometry.Demand, kerf int, allowRotation bool) (geometry.Solution, error) {
	sol, _, err := SolveWithBins(stockW, stockH, demands, kerf, allowRotation)
	return sol, err
}

// SolveWithBins runs the same procedure as Solve but additionally returns
// the final guillotine bins, so callers (remnant reporting, exporters) can
// read each sheet's leftover free-rectangle list without re-deriving it
// from placement bounding boxes. Not part of the core solve contract.
func SolveWithBins(stockW, stockH int, demands []geometry.Demand, kerf int, allowRotation bool) (geometry.Solution, []*guillotine.Bin, error) {
	if err := validate(stockW, stockH, demands, kerf); err != nil {
		return geometry.Solution{}, nil, err
	}

	pieces := expandAndSort(demands)
	if len(pieces) == 0 {
		return geometry.Solution{}, nil, nil
	}

	if err := checkFeasible(pieces, stockW, stockH, allowRotation); err != nil {
		return geometry.Solution{}, nil, err
	}

	strategies := []guillotine.Strategy{guillotine.BestAreaFit, guillotine.BestShortSideFit, guillotine.BestLongSideFit}

	var bestBins []*guillotine.Bin
	var bestSolution geometry.Solution
	haveBest := false

	for _, strategy := range strategies {
		bins := runGreedy(stockW, stockH, kerf, allowRotation, pieces, strategy)
		sol := binsToSolution(bins, stockW, stockH)
		if betterGreedy(sol, bestSolution, haveBest) {
			bestBins = bins
			bestSolution = sol
			haveBest = true
		}
	}

	if len(pieces) <= maxExactPieces {
		exactBins := runBranchAndBound(stockW, stockH, kerf, allowRotation, pieces, bestBins)
		if len(exactBins) < len(bestBins) {
			bestBins = exactBins
		}
	}

	return binsToSolution(bestBins, stockW, stockH), bestBins, nil
}

func validate(stockW, stockH int, demands []geometry.Demand, kerf int) error {
	if stockW < 1 || stockH < 1 {
		return fmt.Errorf("%w: stock dimensions must be >= 1, got %dx%d", ErrInvalidInput, stockW, stockH)
	}
	if kerf < 0 {
		return fmt.Errorf("%w: kerf must be >= 0, got %d", ErrInvalidInput, kerf)
	}
	for i, d := range demands {
		if d.W < 1 || d.H < 1 {
			return fmt.Errorf("%w: demand %d has non-positive dimensions %dx%d", ErrInvalidInput, i, d.W, d.H)
		}
		if d.Qty < 0 {
			return fmt.Errorf("%w: demand %d has negative quantity %d", ErrInvalidInput, i, d.Qty)
		}
	}
	return nil
}

func checkFeasible(pieces []geometry.Piece, stockW, stockH int, allowRotation bool) error {
	for _, p := range pieces {
		fitsNormal := p.W <= stockW && p.H <= stockH
		fitsRotated := allowRotation && p.H <= stockW && p.W <= stockH
		if !fitsNormal && !fitsRotated {
			return fmt.Errorf("%w: piece %dx%d does not fit a %dx%d panel", ErrInfeasible, p.W, p.H, stockW, stockH)
		}
	}
	return nil
}
