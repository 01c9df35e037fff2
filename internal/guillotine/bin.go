// Package guillotine implements the stateful free-rectangle list for a
// single stock panel: candidate scoring, placement, and guillotine-feasible
// splitting with kerf accounting.
package guillotine

import "github.com/piwi3910/cutstock/internal/geometry"

// Strategy selects how FindBest scores competing candidates. Lower scores
// win.
type Strategy int

const (
	// BestAreaFit scores by leftover area in the free rectangle.
	BestAreaFit Strategy = iota
	// BestShortSideFit scores by the smaller leftover dimension.
	BestShortSideFit
	// BestLongSideFit scores by the larger leftover dimension.
	BestLongSideFit
)

// Candidate is a scored placement opportunity returned by FindBest.
type Candidate struct {
	FreeRectIndex int
	W, H          int
	X, Y          int
	Rotated       bool
	Score         int
}

// Bin owns one panel's free-rectangle list and placed pieces. The zero value
// is not usable; construct with New.
type Bin struct {
	W, H          int
	Kerf          int
	AllowRotation bool

	Free   []geometry.Rect
	Placed []geometry.Placement
}

// New creates a Bin for a w×h panel with the given kerf and rotation
// permission. It starts with a single free rectangle equal to the whole
// panel and no placements.
func New(w, h, kerf int, allowRotation bool) *Bin {
	return &Bin{
		W:             w,
		H:             h,
		Kerf:          kerf,
		AllowRotation: allowRotation,
		Free:          []geometry.Rect{{X: 0, Y: 0, W: w, H: h}},
	}
}

// orientation is one admissible (w, h, rotated) choice for a piece.
type orientation struct {
	w, h    int
	rotated bool
}

func (b *Bin) orientations(pieceW, pieceH int) []orientation {
	out := make([]orientation, 0, 2)
	out = append(out, orientation{w: pieceW, h: pieceH, rotated: false})
	if b.AllowRotation && pieceW != pieceH {
		out = append(out, orientation{w: pieceH, h: pieceW, rotated: true})
	}
	return out
}

func score(strategy Strategy, f geometry.Rect, w, h int) int {
	switch strategy {
	case BestAreaFit:
		return f.W*f.H - w*h
	case BestShortSideFit:
		return min(f.W-w, f.H-h)
	case BestLongSideFit:
		return max(f.W-w, f.H-h)
	default:
		return f.W*f.H - w*h
	}
}

// FindBest scans every free rectangle and every admissible orientation of
// pieceW×pieceH, returning the candidate that minimizes the strategy's
// score. Ties are broken by earliest free rectangle, then non-rotated
// before rotated. Reports false if no orientation fits anywhere.
func (b *Bin) FindBest(pieceW, pieceH int, strategy Strategy) (Candidate, bool) {
	var best Candidate
	found := false

	for idx, f := range b.Free {
		for _, o := range b.orientations(pieceW, pieceH) {
			if !f.Fits(o.w, o.h) {
				continue
			}
			s := score(strategy, f, o.w, o.h)
			if !found || s < best.Score {
				best = Candidate{
					FreeRectIndex: idx,
					W:             o.w,
					H:             o.h,
					X:             f.X,
					Y:             f.Y,
					Rotated:       o.rotated,
					Score:         s,
				}
				found = true
			}
		}
	}

	return best, found
}

// Place removes the candidate's free rectangle, records the placement, and
// splits the remainder per the longer-axis-split rule, kerf-aware. It
// returns the resulting Placement.
func (b *Bin) Place(c Candidate) geometry.Placement {
	f := b.Free[c.FreeRectIndex]
	b.Free = append(b.Free[:c.FreeRectIndex], b.Free[c.FreeRectIndex+1:]...)

	placement := geometry.Placement{W: c.W, H: c.H, X: f.X, Y: f.Y, Rotated: c.Rotated}
	b.Placed = append(b.Placed, placement)

	dw := f.W - c.W
	dh := f.H - c.H
	kerf := b.Kerf

	switch {
	case dw > kerf && dh > kerf:
		if f.W >= f.H {
			right := geometry.Rect{X: f.X + c.W + kerf, Y: f.Y, W: dw - kerf, H: f.H}
			top := geometry.Rect{X: f.X, Y: f.Y + c.H + kerf, W: c.W, H: dh - kerf}
			b.Free = append(b.Free, right, top)
		} else {
			bottom := geometry.Rect{X: f.X, Y: f.Y + c.H + kerf, W: f.W, H: dh - kerf}
			left := geometry.Rect{X: f.X + c.W + kerf, Y: f.Y, W: dw - kerf, H: c.H}
			b.Free = append(b.Free, bottom, left)
		}
	case dw > kerf:
		b.Free = append(b.Free, geometry.Rect{X: f.X + c.W + kerf, Y: f.Y, W: dw - kerf, H: f.H})
	case dh > kerf:
		b.Free = append(b.Free, geometry.Rect{X: f.X, Y: f.Y + c.H + kerf, W: f.W, H: dh - kerf})
	}

	b.prune()
	return placement
}

// prune drops any free rectangle wholly contained in another, keeping the
// list compact. This is a performance optimization, not required for
// correctness.
func (b *Bin) prune() {
	kept := b.Free[:0:0]
	for i, r := range b.Free {
		dominated := false
		for j, other := range b.Free {
			if i == j {
				continue
			}
			if other.Contains(r) && !(r.Contains(other) && i < j) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, r)
		}
	}
	b.Free = kept
}

// FreeArea sums w·h over every current free rectangle.
func (b *Bin) FreeArea() int {
	total := 0
	for _, r := range b.Free {
		total += r.W * r.H
	}
	return total
}

// Clone returns a deep copy of the bin, so branch-and-bound siblings never
// share mutable state.
func (b *Bin) Clone() *Bin {
	out := &Bin{
		W:             b.W,
		H:             b.H,
		Kerf:          b.Kerf,
		AllowRotation: b.AllowRotation,
		Free:          append([]geometry.Rect(nil), b.Free...),
		Placed:        append([]geometry.Placement(nil), b.Placed...),
	}
	return out
}
