package css

import "fmt"

// Variable is a CSS custom property declaration found by the tree-sitter
// extractor
type Variable struct {
	Name  string
	Value string
}

// ParseResult contains the custom properties extracted from raw CSS text,
// in source order
type ParseResult struct {
	Variables []*Variable
}

// SyntaxError is a problem found while building the stylesheet tree
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ErrorList collects every SyntaxError found in one parse
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}
