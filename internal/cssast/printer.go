package cssast

import (
	"io"
	"strings"
)

const indentUnit = "  "

// Stringify prints the tree as CSS with two-space indentation and one node
// per line.
func Stringify(root *Root) string {
	var b strings.Builder
	_ = Fprint(&b, root)
	return b.String()
}

// Fprint writes root to w in the format produced by Stringify
func Fprint(w io.Writer, root *Root) error {
	var b strings.Builder
	for _, n := range root.Nodes() {
		printNode(&b, n, 0)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func printNode(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch n := n.(type) {
	case *Rule:
		b.WriteString(indent)
		b.WriteString(n.Selector)
		printBlock(b, n, depth)
	case *AtRule:
		b.WriteString(indent)
		b.WriteByte('@')
		b.WriteString(n.Name)
		if n.Params != "" {
			b.WriteByte(' ')
			b.WriteString(n.Params)
		}
		if !n.Block {
			b.WriteByte(';')
			return
		}
		printBlock(b, n, depth)
	case *Declaration:
		b.WriteString(indent)
		b.WriteString(n.Prop)
		b.WriteString(": ")
		b.WriteString(n.Value)
		if n.Important {
			b.WriteString(" !important")
		}
		b.WriteByte(';')
	case *Comment:
		b.WriteString(indent)
		b.WriteString("/*")
		b.WriteString(n.Text)
		b.WriteString("*/")
	}
}

func printBlock(b *strings.Builder, c Container, depth int) {
	nodes := c.Nodes()
	if len(nodes) == 0 {
		b.WriteString(" {}")
		return
	}
	b.WriteString(" {\n")
	for _, child := range nodes {
		printNode(b, child, depth+1)
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteByte('}')
}
