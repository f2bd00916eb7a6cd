package rectpack

import (
	"fmt"
	"strings"
)

// Heuristic is a bitmask combining a free-rectangle selection rule and a
// guillotine split rule.
type Heuristic uint16

const (
	BestAreaFit              Heuristic = 0x00
	BestShortSideFit         Heuristic = 0x10
	BestLongSideFit          Heuristic = 0x20
	FirstFit                 Heuristic = 0x30
	SplitShorterLeftoverAxis Heuristic = 0x0000
	SplitLongerLeftoverAxis  Heuristic = 0x0100
	SplitMinimizeArea        Heuristic = 0x0200
	SplitMaximizeArea        Heuristic = 0x0300
	SplitShorterAxis         Heuristic = 0x0400
	SplitLongerAxis          Heuristic = 0x0500

	fitMask   Heuristic = 0x00F0
	splitMask Heuristic = 0x0F00

	// DefaultHeuristic picks the smallest free rectangle and splits along the
	// shorter leftover axis.
	DefaultHeuristic = BestAreaFit | SplitShorterLeftoverAxis
)

var (
	fitNames = map[string]Heuristic{
		"BestAreaFit":      BestAreaFit,
		"BestShortSideFit": BestShortSideFit,
		"BestLongSideFit":  BestLongSideFit,
		"FirstFit":         FirstFit,
	}
	splitNames = map[string]Heuristic{
		"ShorterLeftoverAxis": SplitShorterLeftoverAxis,
		"LongerLeftoverAxis":  SplitLongerLeftoverAxis,
		"MinimizeArea":        SplitMinimizeArea,
		"MaximizeArea":        SplitMaximizeArea,
		"ShorterAxis":         SplitShorterAxis,
		"LongerAxis":          SplitLongerAxis,
	}
)

// Fit returns the selection rule portion of the bitmask.
func (e Heuristic) Fit() Heuristic {
	return e & fitMask
}

// Split returns the split rule portion of the bitmask.
func (e Heuristic) Split() Heuristic {
	return e & splitMask
}

// String returns "Fit/Split" using the names accepted by ResolveHeuristic.
func (e Heuristic) String() string {
	fit, split := "?", "?"
	for name, h := range fitNames {
		if h == e.Fit() {
			fit = name
		}
	}
	for name, h := range splitNames {
		if h == e.Split() {
			split = name
		}
	}
	return fit + "/" + split
}

// ResolveHeuristic maps a selection rule name and a split rule name to a
// Heuristic. Names are matched case-insensitively; an empty name selects the
// default for that half.
func ResolveHeuristic(fit, split string) (Heuristic, error) {
	h := DefaultHeuristic
	if fit = strings.TrimSpace(fit); fit != "" {
		v, ok := lookupName(fitNames, fit)
		if !ok {
			return 0, fmt.Errorf("unknown fit heuristic %q", fit)
		}
		h = h&^fitMask | v
	}
	if split = strings.TrimSpace(split); split != "" {
		v, ok := lookupName(splitNames, split)
		if !ok {
			return 0, fmt.Errorf("unknown split heuristic %q", split)
		}
		h = h&^splitMask | v
	}
	return h, nil
}

func lookupName(names map[string]Heuristic, name string) (Heuristic, bool) {
	for k, v := range names {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return 0, false
}
