package js

import (
	"slices"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"bennypowers.dev/clampwind/internal/log"
	"bennypowers.dev/clampwind/internal/parser/sitterpool"
)

// Tags are the template tag names whose literals hold markup or styles
var Tags = []string{"css", "html"}

// templateQueries each capture a @tag name and its @template literal
var templateQueries = map[string]string{
	"call": `
		(call_expression
			function: (identifier) @tag
			arguments: (template_string) @template)`,
	// lit.css`...`
	"member": `
		(call_expression
			function: (member_expression property: (property_identifier) @tag)
			arguments: (template_string) @template)`,
	// css<Type>`...` is valid TypeScript, but the JS grammar reads it as
	// nested binary expressions rather than a call with type arguments.
	"generic": `
		(binary_expression
			left: (binary_expression
				left: (identifier) @tag)
			right: (template_string) @template)`,
}

var pool = sitterpool.New("JS", sitter.NewLanguage(tree_sitter_javascript.Language()), templateQueries)

// Parser finds css and html tagged template literals in JS/TS source
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

// ParseTemplates finds css and html tagged templates in source order.
// Templates with ${...} substitutions are skipped: their text is not a
// complete stylesheet.
func (p *Parser) ParseTemplates(source string) []TemplateRegion {
	src := []byte(source)
	tree, err := p.sp.Parse(src)
	if err != nil {
		return nil
	}
	defer tree.Close()

	var regions []TemplateRegion
	for name := range templateQueries {
		regions = append(regions, p.match(p.sp.Query(name), tree.RootNode(), src)...)
	}
	slices.SortFunc(regions, func(a, b TemplateRegion) int {
		return int(a.StartByte) - int(b.StartByte)
	})
	return regions
}

func (p *Parser) match(query *sitter.Query, root *sitter.Node, src []byte) []TemplateRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var regions []TemplateRegion
	names := query.CaptureNames()
	matches := cursor.Matches(query, root, src)
	for m := matches.Next(); m != nil; m = matches.Next() {
		var tag string
		var template *sitter.Node
		for _, c := range m.Captures {
			switch names[c.Index] {
			case "tag":
				tag = string(src[c.Node.StartByte():c.Node.EndByte()])
			case "template":
				template = &c.Node
			}
		}
		if template == nil || !slices.Contains(Tags, tag) {
			continue
		}

		region, ok := templateRegion(template, src)
		if !ok {
			pos := template.StartPosition()
			log.Debug("Skipping %s template with substitutions at %d:%d", tag, pos.Row+1, pos.Column+1)
			continue
		}
		region.Tag = tag
		regions = append(regions, region)
	}
	return regions
}

// templateRegion returns the text between the backticks of a template_string
// node. It reports false when the template holds a ${...} substitution.
func templateRegion(template *sitter.Node, src []byte) (TemplateRegion, bool) {
	for i := uint(0); i < template.NamedChildCount(); i++ {
		if template.NamedChild(i).Kind() == "template_substitution" {
			return TemplateRegion{}, false
		}
	}

	start, end := template.StartByte()+1, max(template.EndByte()-1, template.StartByte()+1)
	pos := template.StartPosition()
	return TemplateRegion{
		Content:   string(src[start:end]),
		StartByte: start,
		EndByte:   end,
		StartLine: pos.Row,
		StartCol:  pos.Column + 1,
	}, true
}
