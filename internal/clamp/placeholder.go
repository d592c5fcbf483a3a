package clamp

import (
	"regexp"
	"strings"
)

// a single placeholder argument: a number with an optional unit or a
// custom property reference
var argumentRegexp = regexp.MustCompile(`^(?:-?(?:\d+(?:\.\d*)?|\.\d+)[A-Za-z%]*|var\(\s*--[A-Za-z0-9_-]+\s*\)|--[A-Za-z0-9_-]+)$`)

// Placeholder is the author-facing clamp(lower, upper) shorthand
type Placeholder struct {
	Lower string
	Upper string
}

// ParsePlaceholder reports whether value is exactly a two-argument
// clamp(lower, upper) and returns its arguments. Real three-argument
// clamp() values and anything with trailing text are rejected.
func ParsePlaceholder(value string) (Placeholder, bool) {
	v := strings.TrimSpace(value)
	if len(v) < len("clamp()") || !strings.EqualFold(v[:len("clamp(")], "clamp(") || !strings.HasSuffix(v, ")") {
		return Placeholder{}, false
	}

	args, ok := splitArguments(v[len("clamp(") : len(v)-1])
	if !ok || len(args) != 2 {
		return Placeholder{}, false
	}
	for _, arg := range args {
		if !argumentRegexp.MatchString(arg) {
			return Placeholder{}, false
		}
	}
	return Placeholder{Lower: args[0], Upper: args[1]}, true
}

// splitArguments splits on top-level commas. It fails when a parenthesis
// closes before it opens, which means the outer clamp( was closed early.
func splitArguments(s string) ([]string, bool) {
	var args []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	args = append(args, strings.TrimSpace(s[start:]))
	return args, true
}
