package clamp

import (
	"fmt"
	"math"
)

// Synthesizer computes fluid clamp() values. It never touches the tree.
type Synthesizer struct {
	Sizing    BaseSizing
	Props     CustomProperties
	Precision int
}

// Synthesize interpolates linearly from lower at minBound to upper at
// maxBound. All four arguments are raw lengths (see Normalize). When
// container is true the preferred value uses container query width units
// instead of viewport units.
//
// It reports false when a value cannot be resolved, when lower or upper
// resolves to zero, or when both bounds are the same width.
func (s Synthesizer) Synthesize(lower, upper, minBound, maxBound string, container bool) (string, bool) {
	lo, ok := Normalize(lower, s.Sizing, s.Props)
	if !ok || lo == 0 {
		return "", false
	}
	hi, ok := Normalize(upper, s.Sizing, s.Props)
	if !ok || hi == 0 {
		return "", false
	}
	minWidth, ok := Normalize(minBound, s.Sizing, s.Props)
	if !ok {
		return "", false
	}
	maxWidth, ok := Normalize(maxBound, s.Sizing, s.Props)
	if !ok || maxWidth == minWidth {
		return "", false
	}

	slope := (hi - lo) / (maxWidth - minWidth)
	intercept := lo - slope*minWidth
	if math.IsNaN(slope) || math.IsInf(slope, 0) || math.IsNaN(intercept) {
		return "", false
	}

	unit := "vw"
	if container {
		unit = "cqw"
	}

	first, last := lo, hi
	if first > last {
		first, last = last, first
	}

	return fmt.Sprintf("clamp(%s, %s, %s)",
		formatRem(first, s.Precision),
		s.preferred(intercept, slope*100, unit),
		formatRem(last, s.Precision),
	), true
}

// preferred writes `calc(<intercept>rem + <rate><unit>)`, turning a
// negative rate into a subtraction
func (s Synthesizer) preferred(intercept, rate float64, unit string) string {
	op := "+"
	if rate < 0 {
		op = "-"
		rate = -rate
	}
	return fmt.Sprintf("calc(%s %s %s%s)", formatRem(intercept, s.Precision), op, formatNumber(rate, s.Precision), unit)
}
