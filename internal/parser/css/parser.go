package css

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"bennypowers.dev/clampwind/internal/parser/sitterpool"
)

var pool = sitterpool.New("CSS", sitter.NewLanguage(tree_sitter_css.Language()), nil)

// Parser extracts custom property declarations from raw CSS text with
// tree-sitter. It is used where declarations are only available as text.
type Parser struct {
	sp *sitterpool.Parser
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	return &Parser{sp: pool.Acquire()}
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		pool.Release(p.sp)
	}
}

// ClosePool closes all idle parsers
func ClosePool() {
	pool.Close()
}

// ExtractVariables parses source with a pooled parser and returns its
// custom property declarations
func ExtractVariables(source string) (*ParseResult, error) {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Parse(source)
}

// Parse parses CSS code and extracts custom property declarations
func (p *Parser) Parse(source string) (*ParseResult, error) {
	src := []byte(source)
	tree, err := p.sp.Parse(src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	result := &ParseResult{Variables: []*Variable{}}
	p.walkTree(tree.RootNode(), src, result)
	return result, nil
}

// walkTree recursively walks the tree to find declarations
func (p *Parser) walkTree(node *sitter.Node, source []byte, result *ParseResult) {
	if node == nil {
		return
	}

	if node.Kind() == "declaration" {
		p.handleDeclaration(node, source, result)
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		p.walkTree(node.Child(i), source, result)
	}
}

// handleDeclaration records a declaration whose property is a custom property.
// The value is the source text between the colon and the end of the
// declaration, so function values like var() are kept whole.
func (p *Parser) handleDeclaration(node *sitter.Node, source []byte, result *ParseResult) {
	var propertyNode, colonNode *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "property_name":
			propertyNode = child
		case ":":
			if colonNode == nil {
				colonNode = child
			}
		}
	}
	if propertyNode == nil || colonNode == nil {
		return
	}

	name := string(source[propertyNode.StartByte():propertyNode.EndByte()])
	if !strings.HasPrefix(name, "--") {
		return
	}

	value := string(source[colonNode.EndByte():node.EndByte()])
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))

	result.Variables = append(result.Variables, &Variable{Name: name, Value: value})
}
