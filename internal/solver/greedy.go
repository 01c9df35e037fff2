package solver

import (
	"github.com/piwi3910/cutstock/internal/geometry"
	"github.com/piwi3910/cutstock/internal/guillotine"
)

// runGreedy packs pieces (already expanded and sorted) into a fresh bin
// list using a single scoring strategy. For each piece it queries every
// open bin and takes the lowest-scoring candidate, breaking ties by
// earliest bin; if no open bin fits, it opens a new one. Returns the
// resulting bin list; the caller derives a Solution and statistics from it.
func runGreedy(stockW, stockH, kerf int, allowRotation bool, pieces []geometry.Piece, strategy guillotine.Strategy) []*guillotine.Bin {
	var bins []*guillotine.Bin

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
				// Feasibility is checked up front; this should not happen.
				continue
			}
			bin.Place(c)
			bins = append(bins, bin)
			continue
		}

		bins[bestBin].Place(bestCandidate)
	}

	return bins
}

// binsToSolution converts a bin list into a Solution, computing waste
// percent against stockW×stockH panels.
func binsToSolution(bins []*guillotine.Bin, stockW, stockH int) geometry.Solution {
	sol := geometry.Solution{}
	total := 0
	for _, b := range bins {
		sheet := geometry.Sheet{Placements: append([]geometry.Placement(nil), b.Placed...)}
		sol.Sheets = append(sol.Sheets, sheet)
		total += len(b.Placed)
	}
	sol.TotalPiecesPlaced = total
	sol.WastePercent = wastePercent(sol, stockW, stockH)
	return sol
}

func wastePercent(sol geometry.Solution, stockW, stockH int) float64 {
	if len(sol.Sheets) == 0 {
		return 0
	}
	panelArea := stockW * stockH
	totalArea := len(sol.Sheets) * panelArea
	used := sol.UsedArea()
	pct := 100 * (1 - float64(used)/float64(totalArea))
	return roundTo1(pct)
}

func roundTo1(v float64) float64 {
	const scale = 10
	r := float64(int(v*scale+0.5)) / scale
	if r == 0 {
		return 0
	}
	return r
}

// lastSheetUsedArea returns the used area of the last sheet in the
// solution, or 0 if there are no sheets.
func lastSheetUsedArea(sol geometry.Solution) int {
	if len(sol.Sheets) == 0 {
		return 0
	}
	return sol.Sheets[len(sol.Sheets)-1].UsedArea()
}

// betterGreedy reports whether candidate improves on current by the spec's
// lexicographic comparison: fewer sheets wins; ties broken by a larger used
// area on the last sheet.
func betterGreedy(candidate, current geometry.Solution, hasCurrent bool) bool {
	if !hasCurrent {
		return true
	}
	if len(candidate.Sheets) != len(current.Sheets) {
		return len(candidate.Sheets) < len(current.Sheets)
	}
	return lastSheetUsedArea(candidate) > lastSheetUsedArea(current)
}
