package css

import (
	"regexp"
	"strings"

	"bennypowers.dev/clampwind/internal/cssast"
)

var importantRegexp = regexp.MustCompile(`(?i)\s*!\s*important\s*$`)

// Parse builds a mutable stylesheet tree from CSS source.
//
// Parsing is lenient: the tree is always returned, and problems such as
// unclosed blocks or declarations without a colon are reported together as
// an ErrorList alongside it.
func Parse(source string) (*cssast.Root, error) {
	s := &scanner{src: source, line: 1, col: 1}
	root := cssast.NewRoot()
	root.Text = source

	start := s.position()
	s.parseNodes(root, false)
	root.SetSource(cssast.Source{Start: start, End: s.position()})

	if len(s.errs) > 0 {
		return root, s.errs
	}
	return root, nil
}

type scanner struct {
	src  string
	pos  int
	line int
	col  int
	errs ErrorList
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

func (s *scanner) position() cssast.Position {
	return cssast.Position{Line: s.line, Column: s.col, Offset: s.pos}
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}
	if s.src[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

func (s *scanner) advanceN(n int) {
	for range n {
		s.advance()
	}
}

func (s *scanner) addError(at cssast.Position, msg string) {
	s.errs = append(s.errs, &SyntaxError{Message: msg, Line: at.Line, Column: at.Column})
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', '\f':
			s.advance()
		default:
			return
		}
	}
}

// parseNodes consumes the contents of a block (or the whole stylesheet when
// nested is false) into parent. It reports whether the closing brace of a
// nested block was found; the brace itself is left for the caller.
func (s *scanner) parseNodes(parent cssast.Container, nested bool) bool {
	for {
		s.skipSpace()
		if s.eof() {
			return false
		}

		switch {
		case s.peek() == '}':
			if nested {
				return true
			}
			s.addError(s.position(), "unexpected }")
			s.advance()
		case s.peek() == ';':
			s.advance()
		case s.hasPrefix("<!--"):
			s.advanceN(4)
		case s.hasPrefix("-->"):
			s.advanceN(3)
		case s.hasPrefix("/*"):
			parent.Append(s.parseComment())
		case s.peek() == '@':
			s.parseAtRule(parent)
		default:
			s.parseRuleOrDeclaration(parent)
		}
	}
}

func (s *scanner) parseComment() *cssast.Comment {
	start := s.position()
	s.advanceN(2)
	body := s.src[s.pos:]
	end := strings.Index(body, "*/")
	if end < 0 {
		s.addError(start, "unterminated comment")
		end = len(body)
	}
	c := cssast.NewComment(body[:end])
	s.advanceN(end)
	if !s.eof() {
		s.advanceN(2)
	}
	c.SetSource(cssast.Source{Start: start, End: s.position()})
	return c
}

func (s *scanner) parseAtRule(parent cssast.Container) {
	start := s.position()
	s.advance() // @

	nameStart := s.pos
	for !s.eof() && isNameByte(s.peek()) {
		s.advance()
	}
	name := s.src[nameStart:s.pos]

	prelude, stop := s.scanUntil("{;}")
	at := &cssast.AtRule{Name: name, Params: strings.Join(strings.Fields(prelude), " ")}
	parent.Append(at)

	switch stop {
	case '{':
		s.advance()
		at.Block = true
		s.parseBlock(at, start, "@"+name)
	case ';':
		s.advance()
	}
	at.SetSource(cssast.Source{Start: start, End: s.position()})
}

func (s *scanner) parseRuleOrDeclaration(parent cssast.Container) {
	start := s.position()
	text, stop := s.scanUntil("{;}")

	if stop == '{' {
		rule := cssast.NewRule(strings.TrimSpace(text))
		parent.Append(rule)
		s.advance()
		s.parseBlock(rule, start, rule.Selector)
		rule.SetSource(cssast.Source{Start: start, End: s.position()})
		return
	}

	end := s.position()
	if stop == ';' {
		s.advance()
	}

	decl, ok := parseDeclaration(text)
	if !ok {
		s.addError(start, "invalid declaration "+quote(strings.TrimSpace(text)))
		return
	}
	decl.SetSource(cssast.Source{Start: start, End: end})
	parent.Append(decl)
}

func (s *scanner) parseBlock(c cssast.Container, start cssast.Position, what string) {
	if s.parseNodes(c, true) {
		s.advance() // }
		return
	}
	s.addError(start, "unclosed block "+quote(what))
}

// scanUntil reads up to the first byte of stops found outside strings,
// comments, parentheses and brackets. The stop byte is not consumed; it is
// 0 at end of input.
func (s *scanner) scanUntil(stops string) (string, byte) {
	startPos := s.pos
	depth := 0
	for !s.eof() {
		c := s.peek()
		switch {
		case c == '\\':
			s.advanceN(2)
			continue
		case c == '"' || c == '\'':
			s.skipString(c)
			continue
		case s.hasPrefix("/*"):
			at := s.position()
			if end := strings.Index(s.src[s.pos+2:], "*/"); end >= 0 {
				s.advanceN(end + 4)
			} else {
				s.addError(at, "unterminated comment")
				s.advanceN(len(s.src) - s.pos)
			}
			continue
		case c == '(' || c == '[':
			depth++
		case (c == ')' || c == ']') && depth > 0:
			depth--
		case depth == 0 && strings.IndexByte(stops, c) >= 0:
			return s.src[startPos:s.pos], c
		}
		s.advance()
	}
	return s.src[startPos:s.pos], 0
}

func (s *scanner) skipString(quoteByte byte) {
	start := s.position()
	s.advance()
	for !s.eof() {
		c := s.peek()
		switch c {
		case '\\':
			s.advanceN(2)
			continue
		case quoteByte:
			s.advance()
			return
		case '\n':
			s.addError(start, "unterminated string")
			return
		}
		s.advance()
	}
	s.addError(start, "unterminated string")
}

// parseDeclaration splits `prop: value !important` text
func parseDeclaration(text string) (*cssast.Declaration, bool) {
	colon := strings.IndexByte(text, ':')
	if colon < 0 {
		return nil, false
	}
	prop := strings.TrimSpace(text[:colon])
	if prop == "" || strings.ContainsAny(prop, " \t\n") {
		return nil, false
	}

	value := strings.TrimSpace(text[colon+1:])
	decl := cssast.NewDeclaration(prop, value)
	if loc := importantRegexp.FindStringIndex(value); loc != nil {
		decl.Value = strings.TrimSpace(value[:loc[0]])
		decl.Important = true
	}
	return decl, true
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func quote(s string) string {
	const maxLen = 40
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return `"` + s + `"`
}
