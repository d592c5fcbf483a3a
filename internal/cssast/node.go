// Package cssast is a small mutable CSS syntax tree: rules, at-rules,
// declarations and comments linked to their parents, with the insertion and
// removal primitives the clamp pipeline rewrites stylesheets with.
package cssast

// Kind identifies the concrete type of a Node
type Kind int

const (
	// RootKind is the stylesheet itself
	RootKind Kind = iota
	// RuleKind is a qualified rule (selector { ... })
	RuleKind
	// AtRuleKind is an at-rule (@name params { ... } or @name params;)
	AtRuleKind
	// DeclarationKind is a property: value pair
	DeclarationKind
	// CommentKind is a /* ... */ comment between nodes
	CommentKind
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case RootKind:
		return "root"
	case RuleKind:
		return "rule"
	case AtRuleKind:
		return "atrule"
	case DeclarationKind:
		return "decl"
	case CommentKind:
		return "comment"
	default:
		return "unknown"
	}
}

// Position is a location in the source text.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Source is the span a node was parsed from. Nodes built by the rewriter have
// a zero Source.
type Source struct {
	Start Position
	End   Position
}

// Valid reports whether the span came from parsed input
func (s Source) Valid() bool {
	return s.Start.Line > 0
}

// Node is any node in the tree
type Node interface {
	Kind() Kind
	Parent() Container
	Source() Source
	// Remove detaches the node from its parent. It is a no-op for detached nodes.
	Remove()

	setParent(Container)
}

// Container is a node that holds child nodes
type Container interface {
	Node
	Nodes() []Node
	Append(nodes ...Node)
	// InsertBefore inserts node before ref. It reports false when ref is not
	// a child of the container.
	InsertBefore(ref, node Node) bool
	RemoveChild(node Node) bool
}

type base struct {
	parent Container
	source Source
}

func (b *base) Parent() Container { return b.parent }
func (b *base) Source() Source { return b.source }
func (b *base) setParent(p Container) { b.parent = p }
func (b *base) SetSource(source Source) { b.source = source }

type children struct {
	nodes []Node
}

func (c *children) Nodes() []Node {
	return c.nodes
}

func (c *children) appendTo(owner Container, nodes ...Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.Remove()
		n.setParent(owner)
		c.nodes = append(c.nodes, n)
	}
}

func (c *children) insertBefore(owner Container, ref, node Node) bool {
	idx := c.index(ref)
	if idx < 0 || node == nil {
		return false
	}
	node.Remove()
	// removing node may have shifted ref when both share this container
	idx = c.index(ref)
	node.setParent(owner)
	c.nodes = append(c.nodes, nil)
	copy(c.nodes[idx+1:], c.nodes[idx:])
	c.nodes[idx] = node
	return true
}

func (c *children) removeChild(node Node) bool {
	idx := c.index(node)
	if idx < 0 {
		return false
	}
	c.nodes = append(c.nodes[:idx], c.nodes[idx+1:]...)
	node.setParent(nil)
	return true
}

func (c *children) index(node Node) int {
	for i, n := range c.nodes {
		if n == node {
			return i
		}
	}
	return -1
}

func detach(n Node) {
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
}

// Root is the top of a parsed stylesheet
type Root struct {
	base
	children

	// Text is the source the tree was parsed from, if any
	Text string
}

// NewRoot creates an empty stylesheet
func NewRoot() *Root {
	return &Root{}
}

func (r *Root) Kind() Kind { return RootKind }
func (r *Root) Remove() {}
func (r *Root) Append(nodes ...Node) { r.appendTo(r, nodes...) }
func (r *Root) InsertBefore(ref, node Node) bool { return r.insertBefore(r, ref, node) }
func (r *Root) RemoveChild(node Node) bool { return r.removeChild(node) }

// SourceText returns the slice of the original input spanned by n, or "" when
// n was not parsed from r.Text.
func (r *Root) SourceText(n Node) string {
	src := n.Source()
	if !src.Valid() || src.End.Offset > len(r.Text) || src.Start.Offset > src.End.Offset {
		return ""
	}
	return r.Text[src.Start.Offset:src.End.Offset]
}

// Rule is a qualified rule such as `.card { ... }`
type Rule struct {
	base
	children

	Selector string
}

// NewRule creates a rule with the given selector
func NewRule(selector string) *Rule {
	return &Rule{Selector: selector}
}

func (r *Rule) Kind() Kind { return RuleKind }
func (r *Rule) Remove() { detach(r) }
func (r *Rule) Append(nodes ...Node) { r.appendTo(r, nodes...) }
func (r *Rule) InsertBefore(ref, node Node) bool { return r.insertBefore(r, ref, node) }
func (r *Rule) RemoveChild(node Node) bool { return r.removeChild(node) }

// AtRule is an at-rule such as `@media (width >= 40rem) { ... }`
type AtRule struct {
	base
	children

	// Name is the at-keyword without the leading '@'
	Name string
	// Params is the prelude between the name and the block
	Params string
	// Block is false for statement at-rules like `@import "x.css";`
	Block bool
}

// NewAtRule creates a block at-rule
func NewAtRule(name, params string) *AtRule {
	return &AtRule{Name: name, Params: params, Block: true}
}

func (a *AtRule) Kind() Kind { return AtRuleKind }
func (a *AtRule) Remove() { detach(a) }
func (a *AtRule) Append(nodes ...Node) {
	a.Block = true
	a.appendTo(a, nodes...)
}

func (a *AtRule) InsertBefore(ref, node Node) bool { return a.insertBefore(a, ref, node) }
func (a *AtRule) RemoveChild(node Node) bool { return a.removeChild(node) }

// Declaration is a `prop: value` pair
type Declaration struct {
	base

	Prop      string
	Value     string
	Important bool
}

// NewDeclaration creates a declaration
func NewDeclaration(prop, value string) *Declaration {
	return &Declaration{Prop: prop, Value: value}
}

func (d *Declaration) Kind() Kind { return DeclarationKind }
func (d *Declaration) Remove() { detach(d) }

// Comment is a comment standing between other nodes
type Comment struct {
	base

	// Text is the comment body without the /* */ delimiters
	Text string
}

// NewComment creates a comment
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

func (c *Comment) Kind() Kind { return CommentKind }
func (c *Comment) Remove() { detach(c) }
