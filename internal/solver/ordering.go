package solver

import (
	"sort"

	"github.com/piwi3910/cutstock/internal/geometry"
)

// expandAndSort flattens demands into one Piece per unit of quantity, then
// sorts by descending long side, then descending short side, then
// descending area: the decreasing-longest-side heuristic.
func expandAndSort(demands []geometry.Demand) []geometry.Piece {
	var pieces []geometry.Piece
	for i, d := range demands {
		for q := 0; q < d.Qty; q++ {
			pieces = append(pieces, geometry.Piece{W: d.W, H: d.H, Index: i})
		}
	}

	sort.SliceStable(pieces, func(i, j int) bool {
		a, b := pieces[i], pieces[j]
		longA, shortA := longShort(a.W, a.H)
		longB, shortB := longShort(b.W, b.H)
		if longA != longB {
			return longA > longB
		}
		if shortA != shortB {
			return shortA > shortB
		}
		return a.Area() > b.Area()
	})

	return pieces
}

func longShort(w, h int) (long, short int) {
	if w >= h {
		return w, h
	}
	return h, w
}
