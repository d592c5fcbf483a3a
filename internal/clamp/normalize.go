package clamp

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultRootFontSize is the root font size in px used until a stylesheet declares one
	DefaultRootFontSize = 16.0
	// DefaultSpacing is the spacing unit in rem used until a stylesheet declares one
	DefaultSpacing = 0.25
)

var (
	lengthRegexp    = regexp.MustCompile(`^(-?(?:\d+(?:\.\d*)?|\.\d+))(px|rem)?$`)
	referenceRegexp = regexp.MustCompile(`^var\(\s*(--[A-Za-z0-9_-]+)\s*\)$`)
	leadingNumber   = regexp.MustCompile(`^\s*(-?(?:\d+(?:\.\d*)?|\.\d+))`)
)

// BaseSizing holds the values relative lengths are resolved against
type BaseSizing struct {
	// RootFontSize is the root font size in px
	RootFontSize float64
	// Spacing is the spacing unit in rem that bare numbers multiply
	Spacing float64
}

// DefaultSizing returns the sizing used before any declaration overrides it
func DefaultSizing() BaseSizing {
	return BaseSizing{RootFontSize: DefaultRootFontSize, Spacing: DefaultSpacing}
}

// CustomProperties maps custom property names (with the leading --) to
// their resolved value in rem
type CustomProperties map[string]float64

// Normalize converts a length to rem.
//
// Accepted forms are `<n>px` (divided by the root font size), `<n>rem`,
// a bare `<n>` (a multiple of the spacing unit) and a reference to a
// recorded custom property, written `var(--name)` or `--name`. It reports
// false for anything else.
func Normalize(raw string, sizing BaseSizing, props CustomProperties) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}

	if name, ok := referenceName(value); ok {
		v, found := props[name]
		return v, found
	}

	m := lengthRegexp.FindStringSubmatch(strings.ToLower(value))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	var rem float64
	switch m[2] {
	case "px":
		if sizing.RootFontSize == 0 {
			return 0, false
		}
		rem = n / sizing.RootFontSize
	case "rem":
		rem = n
	default:
		rem = n * sizing.Spacing
	}

	if math.IsNaN(rem) || math.IsInf(rem, 0) {
		return 0, false
	}
	return rem, true
}

func referenceName(value string) (string, bool) {
	if m := referenceRegexp.FindStringSubmatch(value); m != nil {
		return m[1], true
	}
	if strings.HasPrefix(value, "--") && !strings.ContainsAny(value, " \t(),") {
		return value, true
	}
	return "", false
}

// parseLeadingFloat reads the number at the start of s the way CSS authors
// expect `16px` or `18.5px` to read as a font size
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
