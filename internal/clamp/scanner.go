package clamp

import (
	"strings"

	"bennypowers.dev/clampwind/internal/cssast"
)

// queues holds the pending placeholders per context, in the order the
// second phase drains them
type queues struct {
	noQuery         []Pending
	singleMedia     []Pending
	singleContainer []Pending
	nestedMedia     []Pending
	nestedContainer []Pending
	invalidNesting  []Pending
}

func (q *queues) ordered() [][]Pending {
	return [][]Pending{
		q.noQuery,
		q.singleMedia,
		q.singleContainer,
		q.nestedMedia,
		q.nestedContainer,
		q.invalidNesting,
	}
}

func (q *queues) len() int {
	n := 0
	for _, queue := range q.ordered() {
		n += len(queue)
	}
	return n
}

// placeholders returns the direct child declarations of c whose value is a
// clamp(lower, upper) placeholder
func placeholders(c cssast.Container) []*cssast.Declaration {
	var decls []*cssast.Declaration
	for _, d := range cssast.Declarations(c) {
		if _, ok := ParsePlaceholder(d.Value); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// scanRule queues a rule's placeholders for full-range interpolation. Rules
// with a @media child are left alone.
func (q *queues) scanRule(rule *cssast.Rule) {
	decls := placeholders(rule)
	if len(decls) == 0 {
		return
	}
	for _, n := range rule.Nodes() {
		if at, ok := n.(*cssast.AtRule); ok && at.Name == mediaName {
			return
		}
	}
	q.noQuery = append(q.noQuery, Pending{Context: NoQuery{Rule: rule}, Decls: decls})
}

// scanQuery classifies a @media or @container at-rule by its parent
func (q *queues) scanQuery(at *cssast.AtRule) {
	decls := placeholders(at)
	if len(decls) == 0 {
		return
	}

	parent, nested := cssast.ParentAtRule(at)
	switch {
	case nested && parent.Name == at.Name:
		lower, upper := nestedBounds(parent.Params, at.Params)
		p := Pending{
			Context: DoubleBound{Parent: parent, Child: at, Lower: lower, Upper: upper},
			Decls:   decls,
		}
		if at.Name == containerName {
			q.nestedContainer = append(q.nestedContainer, p)
		} else {
			q.nestedMedia = append(q.nestedMedia, p)
		}

	case nested && isQuery(parent.Name):
		q.invalidNesting = append(q.invalidNesting, Pending{Context: InvalidNesting{AtRule: at}, Decls: decls})

	default:
		relation, threshold := parseRelation(at.Params)
		if relation == NoRelation {
			return
		}
		p := Pending{
			Context: SingleBound{AtRule: at, Relation: relation, Threshold: threshold},
			Decls:   decls,
		}
		if at.Name == containerName {
			q.singleContainer = append(q.singleContainer, p)
		} else {
			q.singleMedia = append(q.singleMedia, p)
		}
	}
}

// isRootSelector reports whether one of the selectors in a list is :root
func isRootSelector(selector string) bool {
	for _, s := range strings.Split(selector, ",") {
		if strings.TrimSpace(s) == ":root" {
			return true
		}
	}
	return false
}
