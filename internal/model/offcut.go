package model

import (
	"sort"

	"github.com/google/uuid"

	"github.com/piwi3910/cutstock/internal/geometry"
)

// Offcut is a usable rectangular remnant left over on a sheet after
// cutting, read directly from the guillotine bin's free-rectangle list.
type Offcut struct {
	ID         string `json:"id"`
	SheetLabel string `json:"sheet_label"`
	SheetIndex int    `json:"sheet_index"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// Area returns the offcut's area in square mm.
func (o Offcut) Area() int {
	return o.Width * o.Height
}

// ToStockSheet converts an offcut into a stock sheet for reuse on a future
// project.
func (o Offcut) ToStockSheet() StockSheet {
	return NewStockSheet("Offcut "+o.SheetLabel, o.Width, o.Height)
}

// MinOffcutDimension is the minimum width or height, in mm, for a free
// rectangle to be reported as a usable offcut.
const MinOffcutDimension = 50

// MinOffcutArea is the minimum area, in square mm, for a free rectangle to
// be reported as a usable offcut.
const MinOffcutArea = 10000

// DetectOffcuts filters a sheet's final free-rectangle list down to the
// ones large enough to be worth keeping, sorted largest first.
func DetectOffcuts(sheetLabel string, sheetIndex int, free []geometry.Rect) []Offcut {
	var offcuts []Offcut
	for _, r := range free {
		if r.W < MinOffcutDimension || r.H < MinOffcutDimension {
			continue
		}
		if r.Area() < MinOffcutArea {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetLabel: sheetLabel,
			SheetIndex: sheetIndex,
			X:          r.X,
			Y:          r.Y,
			Width:      r.W,
			Height:     r.H,
		})
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})

	return offcuts
}

// TotalOffcutArea sums the area of every offcut.
func TotalOffcutArea(offcuts []Offcut) int {
	total := 0
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
