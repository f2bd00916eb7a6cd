package rectpack

import (
	"math"
	"slices"
)

// scoreFunc rates placing a width x height footprint in freeRect. Lower is
// better; the second value breaks ties on the first.
type scoreFunc func(width, height int, freeRect *Rect) (int, int)

func scoreFor(heuristic Heuristic) scoreFunc {
	switch heuristic.Fit() {
	case BestShortSideFit:
		return scoreBestShort
	case BestLongSideFit:
		return scoreBestLong
	case FirstFit:
		return scoreFirst
	default:
		return scoreBestArea
	}
}

func scoreBestArea(width, height int, freeRect *Rect) (int, int) {
	return freeRect.Width*freeRect.Height - width*height, leftoverShort(width, height, freeRect)
}

func scoreBestShort(width, height int, freeRect *Rect) (int, int) {
	return leftoverShort(width, height, freeRect), leftoverLong(width, height, freeRect)
}

func scoreBestLong(width, height int, freeRect *Rect) (int, int) {
	return leftoverLong(width, height, freeRect), leftoverShort(width, height, freeRect)
}

func scoreFirst(int, int, *Rect) (int, int) {
	return 0, 0
}

func leftoverShort(width, height int, freeRect *Rect) int {
	return min(freeRect.Width-width, freeRect.Height-height)
}

func leftoverLong(width, height int, freeRect *Rect) int {
	return max(freeRect.Width-width, freeRect.Height-height)
}

// choice is the outcome of a free-rectangle search.
type choice struct {
	index   int
	rotated bool
}

// findPosition searches freeRects for the best spot for a width x height
// footprint. Candidates are visited in list order, unrotated before rotated,
// and only a strictly better score replaces the current best.
func findPosition(freeRects []Rect, width, height int, allowRotate bool, score scoreFunc) (choice, bool) {
	best := choice{index: -1}
	bestScore, bestTie := math.MaxInt, math.MaxInt
	consider := func(i int, rotated bool, w, h int) {
		free := &freeRects[i]
		if w > free.Width || h > free.Height {
			return
		}
		s, tie := score(w, h, free)
		if s < bestScore || (s == bestScore && tie < bestTie) {
			best = choice{index: i, rotated: rotated}
			bestScore, bestTie = s, tie
		}
	}
	for i := range freeRects {
		consider(i, false, width, height)
		if allowRotate && width != height {
			consider(i, true, height, width)
		}
	}
	return best, best.index >= 0
}

// splitAlongAxis cuts the area of freeRect not covered by placed (which sits in
// its top-left corner) into a bottom and a right remainder. Either may be empty.
func splitAlongAxis(freeRect, placed Rect, splitHorizontal bool) (bottom, right Rect) {
	bottom.X = freeRect.X
	bottom.Y = freeRect.Y + placed.Height
	bottom.Height = freeRect.Height - placed.Height
	right.X = freeRect.X + placed.Width
	right.Y = freeRect.Y
	right.Width = freeRect.Width - placed.Width
	if splitHorizontal {
		bottom.Width = freeRect.Width
		right.Height = placed.Height
	} else {
		bottom.Width = placed.Width
		right.Height = freeRect.Height
	}
	return bottom, right
}

// splitByHeuristic decides the cut direction for the split rule of method.
func splitByHeuristic(method Heuristic, freeRect, placed Rect) bool {
	w := freeRect.Width - placed.Width
	h := freeRect.Height - placed.Height
	switch method.Split() {
	case SplitShorterLeftoverAxis:
		return w <= h
	case SplitLongerLeftoverAxis:
		return w > h
	case SplitMinimizeArea:
		return placed.Width*h > w*placed.Height
	case SplitMaximizeArea:
		return placed.Width*h <= w*placed.Height
	case SplitShorterAxis:
		return freeRect.Width <= freeRect.Height
	case SplitLongerAxis:
		return freeRect.Width > freeRect.Height
	default:
		return true
	}
}

// guillotineSplit replaces freeRects[index] with the non-degenerate remainders
// left after placing placed in its corner.
func guillotineSplit(freeRects []Rect, index int, placed Rect, method Heuristic) []Rect {
	freeRect := freeRects[index]
	bottom, right := splitAlongAxis(freeRect, placed, splitByHeuristic(method, freeRect, placed))
	freeRects = slices.Delete(freeRects, index, index+1)
	if !bottom.IsEmpty() {
		freeRects = append(freeRects, bottom)
	}
	if !right.IsEmpty() {
		freeRects = append(freeRects, right)
	}
	return freeRects
}

// mergeFreeList joins pairs of free rectangles that share a complete edge.
func mergeFreeList(freeRects []Rect) []Rect {
	for i := 0; i < len(freeRects); i++ {
		for j := i + 1; j < len(freeRects); j++ {
			a, b := &freeRects[i], freeRects[j]
			switch {
			case a.X == b.X && a.Width == b.Width && a.Bottom() == b.Y:
				a.Height += b.Height
			case a.X == b.X && a.Width == b.Width && b.Bottom() == a.Y:
				a.Y = b.Y
				a.Height += b.Height
			case a.Y == b.Y && a.Height == b.Height && a.Right() == b.X:
				a.Width += b.Width
			case a.Y == b.Y && a.Height == b.Height && b.Right() == a.X:
				a.X = b.X
				a.Width += b.Width
			default:
				continue
			}
			freeRects = slices.Delete(freeRects, j, j+1)
			// a grew, so earlier candidates may now line up with it
			j = i
		}
	}
	return freeRects
}
