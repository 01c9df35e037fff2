// Package geometry holds the pure value types shared by the guillotine bin
// and the solver: rectangles, demanded pieces, and the placements and
// solutions built from them. Nothing in this package mutates its receiver;
// every operation here is a derived predicate or a constructor.
package geometry

// Rect is an axis-aligned rectangle in integer millimetres, top-left origin,
// x growing right and y growing down.
type Rect struct {
	X, Y, W, H int
}

// Fits reports whether a w×h rectangle fits inside r without rotation.
func (r Rect) Fits(w, h int) bool {
	return w <= r.W && h <= r.H
}

// Area returns w·h.
func (r Rect) Area() int {
	return r.W * r.H
}

// Contains reports whether o lies wholly inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Demand is a requested rectangular piece and how many are needed.
type Demand struct {
	W, H int
	Qty  int
}

// Piece is a single unit of demand, expanded from a Demand's quantity.
// Index identifies which Demand it was expanded from, for diagnostics.
type Piece struct {
	W, H  int
	Index int
}

// Area returns w·h for this piece.
func (p Piece) Area() int {
	return p.W * p.H
}

// Placement is a piece as actually placed on a sheet, after any rotation.
type Placement struct {
	W, H    int
	X, Y    int
	Rotated bool
}

// Rect returns the placement's occupied rectangle.
func (p Placement) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Sheet is one stock panel's worth of placements, in placement order.
type Sheet struct {
	Placements []Placement
}

// UsedArea sums the area of every placement on the sheet.
func (s Sheet) UsedArea() int {
	total := 0
	for _, p := range s.Placements {
		total += p.W * p.H
	}
	return total
}

// Solution is the full result of a solve: an ordered list of sheets plus
// summary statistics.
type Solution struct {
	Sheets            []Sheet
	TotalPiecesPlaced int
	WastePercent      float64
}

// UsedArea sums UsedArea across every sheet in the solution.
func (s Solution) UsedArea() int {
	total := 0
	for _, sh := range s.Sheets {
		total += sh.UsedArea()
	}
	return total
}
