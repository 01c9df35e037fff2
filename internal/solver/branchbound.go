package solver

import (
	"sort"

	"github.com/piwi3910/cutstock/internal/geometry"
	"github.com/piwi3910/cutstock/internal/guillotine"
)

// maxExactPieces is the complexity guard: branch-and-bound runs only when
// the expanded piece count is at most this many.
const maxExactPieces = 20

// bbEngine holds the state of one branch-and-bound run: the panel
// configuration, the sorted piece list shared with the greedy phase, and
// the best solution found so far (seeded from the greedy result).
type bbEngine struct {
	stockW, stockH int
	kerf           int
	allowRotation  bool
	pieces         []geometry.Piece

	ub   int
	best []*guillotine.Bin
}

// bbChild is one branching option at a node: place pieces[i] into an
// existing bin (binIndex >= 0) or a new one (binIndex == -1).
type bbChild struct {
	binIndex int
	cand     guillotine.Candidate
}

func runBranchAndBound(stockW, stockH, kerf int, allowRotation bool, pieces []geometry.Piece, greedyBins []*guillotine.Bin) []*guillotine.Bin {
	if len(pieces) > maxExactPieces {
		return greedyBins
	}

	e := &bbEngine{
		stockW:        stockW,
		stockH:        stockH,
		kerf:          kerf,
		allowRotation: allowRotation,
		pieces:        pieces,
		ub:            len(greedyBins),
		best:          greedyBins,
	}

	e.search(nil, 0)
	return e.best
}

func (e *bbEngine) search(bins []*guillotine.Bin, i int) {
	if i == len(e.pieces) {
		if len(bins) < e.ub {
			e.ub = len(bins)
			e.best = cloneBins(bins)
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
		next := make([]*guillotine.Bin, len(bins), len(bins)+1)
		copy(next, bins)

		if child.binIndex == -1 {
			nb := guillotine.New(e.stockW, e.stockH, e.kerf, e.allowRotation)
			nb.Place(child.cand)
			next = append(next, nb)
		} else {
			nb := bins[child.binIndex].Clone()
			nb.Place(child.cand)
			next[child.binIndex] = nb
		}

		e.search(next, i+1)
	}
}

// enumerateChildren builds every (bin, free rectangle, orientation)
// placement option for piece, plus the open-a-new-bin option, ordered by
// ascending Best Area Fit score.
func (e *bbEngine) enumerateChildren(bins []*guillotine.Bin, piece geometry.Piece) []bbChild {
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

// allCandidates enumerates every admissible (free rectangle, orientation)
// placement for a piece in bin, scored by Best Area Fit, in free-rectangle
// list order then orientation order (non-rotated before rotated).
func allCandidates(bin *guillotine.Bin, pieceW, pieceH int) []guillotine.Candidate {
	var out []guillotine.Candidate

	type orient struct {
		w, h    int
		rotated bool
	}
	orients := []orient{{w: pieceW, h: pieceH, rotated: false}}
	if bin.AllowRotation && pieceW != pieceH {
		orients = append(orients, orient{w: pieceH, h: pieceW, rotated: true})
	}

	for idx, f := range bin.Free {
		for _, o := range orients {
			if !f.Fits(o.w, o.h) {
				continue
			}
			out = append(out, guillotine.Candidate{
				FreeRectIndex: idx,
				W:             o.w,
				H:             o.h,
				X:             f.X,
				Y:             f.Y,
				Rotated:       o.rotated,
				Score:         f.W*f.H - o.w*o.h,
			})
		}
	}

	return out
}

func cloneBins(bins []*guillotine.Bin) []*guillotine.Bin {
	out := make([]*guillotine.Bin, len(bins))
	for i, b := range bins {
		out[i] = b.Clone()
	}
	return out
}
