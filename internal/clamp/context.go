package clamp

import (
	"regexp"
	"strings"

	"bennypowers.dev/clampwind/internal/cssast"
)

const (
	mediaName     = "media"
	containerName = "container"
)

var (
	greaterRegexp       = regexp.MustCompile(`>=?\s*([^)]+)`)
	lessRegexp          = regexp.MustCompile(`<=?\s*([^)]+)`)
	containerNameRegexp = regexp.MustCompile(`^([^\s(]+)\s*\(`)
)

// Relation is the direction of a single-sided width query
type Relation int

const (
	// NoRelation means the condition holds no width comparison
	NoRelation Relation = iota
	// GreaterEqual is `width >= X`: from X and above
	GreaterEqual
	// LessThan is `width < X`: below X
	LessThan
)

func (r Relation) String() string {
	switch r {
	case GreaterEqual:
		return ">="
	case LessThan:
		return "<"
	default:
		return "none"
	}
}

// QueryContext is the size-query situation a placeholder was found in. It
// is one of NoQuery, SingleBound, DoubleBound or InvalidNesting.
type QueryContext interface {
	queryContext()
}

// NoQuery interpolates across the whole viewport breakpoint range
type NoQuery struct {
	Rule *cssast.Rule
}

// SingleBound interpolates between Threshold and the opposite extreme of
// the breakpoint set
type SingleBound struct {
	AtRule    *cssast.AtRule
	Relation  Relation
	Threshold string
}

// Container reports whether the query is a container query
func (s SingleBound) Container() bool {
	return s.AtRule.Name == containerName
}

// DoubleBound interpolates between the bounds of two nested queries of
// the same kind. Lower or Upper is empty when both queries state the same
// relation.
type DoubleBound struct {
	Parent *cssast.AtRule
	Child  *cssast.AtRule
	Lower  string
	Upper  string
}

// Container reports whether the queries are container queries
func (d DoubleBound) Container() bool {
	return d.Child.Name == containerName
}

// InvalidNesting is a @media inside a @container or the reverse
type InvalidNesting struct {
	AtRule *cssast.AtRule
}

func (NoQuery) queryContext()        {}
func (SingleBound) queryContext()    {}
func (DoubleBound) queryContext()    {}
func (InvalidNesting) queryContext() {}

// Pending is a group of placeholder declarations waiting for the second phase
type Pending struct {
	Context QueryContext
	Decls   []*cssast.Declaration
}

// parseRelation finds the width comparison in a query condition. A `>`
// anywhere wins over `<`.
func parseRelation(params string) (Relation, string) {
	if strings.Contains(params, ">") {
		if m := greaterRegexp.FindStringSubmatch(params); m != nil {
			return GreaterEqual, strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(params, "<") {
		if m := lessRegexp.FindStringSubmatch(params); m != nil {
			return LessThan, strings.TrimSpace(m[1])
		}
	}
	return NoRelation, ""
}

// nestedBounds reads the lower bound from whichever condition holds `>`
// and the upper bound from whichever holds `<`, parent first
func nestedBounds(parent, child string) (lower, upper string) {
	for _, params := range []string{parent, child} {
		if lower == "" && strings.Contains(params, ">") {
			if m := greaterRegexp.FindStringSubmatch(params); m != nil {
				lower = strings.TrimSpace(m[1])
			}
		}
	}
	for _, params := range []string{parent, child} {
		if upper == "" && strings.Contains(params, "<") {
			if m := lessRegexp.FindStringSubmatch(params); m != nil {
				upper = strings.TrimSpace(m[1])
			}
		}
	}
	return lower, upper
}

// queryContainerName returns the container name of a @container condition
// such as `card (width >= 20rem)`, or "" for an unnamed query
func queryContainerName(params string) string {
	if m := containerNameRegexp.FindStringSubmatch(strings.TrimSpace(params)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func isQuery(name string) bool {
	return name == mediaName || name == containerName
}
