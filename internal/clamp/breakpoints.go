package clamp

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ContainerPrefix marks container breakpoint names, e.g. "@sm"
const ContainerPrefix = "@"

// Breakpoint is a named width in rem
type Breakpoint struct {
	Name  string
	Value float64
}

// Length returns the breakpoint width as a CSS rem length
func (b Breakpoint) Length() string {
	return strconv.FormatFloat(b.Value, 'f', -1, 64) + "rem"
}

// BreakpointSet is a set of breakpoints sorted ascending by width
type BreakpointSet []Breakpoint

// Min returns the narrowest breakpoint. The set must not be empty.
func (s BreakpointSet) Min() Breakpoint {
	return s[0]
}

// Max returns the widest breakpoint. The set must not be empty.
func (s BreakpointSet) Max() Breakpoint {
	return s[len(s)-1]
}

// Lookup returns the width of the named breakpoint
func (s BreakpointSet) Lookup(name string) (float64, bool) {
	for _, b := range s {
		if b.Name == name {
			return b.Value, true
		}
	}
	return 0, false
}

func (s BreakpointSet) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.Name + "=" + b.Length()
	}
	return strings.Join(parts, ", ")
}

// DefaultBreakpoints returns the built-in viewport breakpoints
func DefaultBreakpoints() map[string]string {
	return map[string]string{
		"sm":  "40rem",
		"md":  "48rem",
		"lg":  "64rem",
		"xl":  "80rem",
		"2xl": "96rem",
	}
}

// DefaultContainerBreakpoints returns the built-in container breakpoints,
// keyed with the container prefix
func DefaultContainerBreakpoints() map[string]string {
	return map[string]string{
		"@3xs": "16rem",
		"@2xs": "18rem",
		"@xs":  "20rem",
		"@sm":  "24rem",
		"@md":  "28rem",
		"@lg":  "32rem",
		"@xl":  "36rem",
		"@2xl": "42rem",
		"@3xl": "48rem",
		"@4xl": "56rem",
		"@5xl": "64rem",
		"@6xl": "72rem",
		"@7xl": "80rem",
	}
}

// mergeBreakpoints overlays origins in order; later origins win by name
func mergeBreakpoints(origins ...map[string]string) map[string]string {
	merged := map[string]string{}
	for _, o := range origins {
		maps.Copy(merged, o)
	}
	return merged
}

// convertBreakpoints normalizes every raw value to rem and sorts the result.
// Entries that cannot be normalized, or are not positive, are dropped.
func convertBreakpoints(raw map[string]string, sizing BaseSizing, props CustomProperties) BreakpointSet {
	set := make(BreakpointSet, 0, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		v, ok := Normalize(raw[name], sizing, props)
		if !ok || v <= 0 {
			continue
		}
		set = append(set, Breakpoint{Name: name, Value: v})
	}
	slices.SortStableFunc(set, func(a, b Breakpoint) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return set
}
