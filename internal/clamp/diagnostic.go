package clamp

import "fmt"

const (
	// InvalidValuesComment is appended to placeholders whose values cannot be resolved
	InvalidValuesComment = "/* Invalid clamp() values */"
	// InvalidNestingComment is appended to placeholders in mixed @media/@container nesting
	InvalidNestingComment = "/* Invalid nested @media and @container rules */"
)

// DiagnosticKind classifies an annotated placeholder
type DiagnosticKind int

const (
	// UnresolvedValues means an argument or bound could not be resolved
	UnresolvedValues DiagnosticKind = iota
	// MixedNesting means a query was nested inside the other query kind
	MixedNesting
	// MissingBound means two nested queries stated the same relation
	MissingBound
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnresolvedValues:
		return "invalid clamp() values"
	case MixedNesting:
		return "invalid nested @media and @container rules"
	case MissingBound:
		return "nested queries must state one lower and one upper bound"
	default:
		return "unknown"
	}
}

// Diagnostic describes one placeholder that was annotated instead of expanded
type Diagnostic struct {
	Kind     DiagnosticKind
	Property string
	// Value is the placeholder value before annotation
	Value string
	// Line and Column locate the declaration; zero when unknown
	Line   int
	Column int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s (%s: %s)", d.Line, d.Column, d.Kind, d.Property, d.Value)
}

// Report summarizes one Process run
type Report struct {
	// Changed is true when the tree was modified
	Changed     bool
	Diagnostics []Diagnostic
	// Expanded counts the placeholders that were replaced by a fluid clamp()
	Expanded             int
	Breakpoints          BreakpointSet
	ContainerBreakpoints BreakpointSet
	Sizing               BaseSizing
}
