package html

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"

	"bennypowers.dev/clampwind/internal/log"
	"bennypowers.dev/clampwind/internal/parser/sitterpool"
)

var pool = sitterpool.New("HTML", sitter.NewLanguage(tree_sitter_html.Language()), map[string]string{
	"style": `(style_element) @style`,
})

// Parser finds the CSS regions of an HTML document
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

// ParseStyleRegions returns the contents of every <style> element in source
// order. Empty style elements yield no region, and neither do elements whose
// type attribute names something other than text/css.
func (p *Parser) ParseStyleRegions(source string) []StyleRegion {
	src := []byte(source)
	tree, err := p.sp.Parse(src)
	if err != nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var regions []StyleRegion
	matches := cursor.Matches(p.sp.Query("style"), tree.RootNode(), src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			if region, ok := styleRegion(&capture.Node, src); ok {
				regions = append(regions, region)
			}
		}
	}
	return regions
}

func styleRegion(element *sitter.Node, src []byte) (StyleRegion, bool) {
	var text *sitter.Node
	for i := uint(0); i < element.ChildCount(); i++ {
		child := element.Child(i)
		switch child.Kind() {
		case "start_tag":
			if typ, ok := attribute(child, "type", src); ok && !isCSSType(typ) {
				pos := element.StartPosition()
				log.Debug("Skipping <style type=%q> at %d:%d", typ, pos.Row+1, pos.Column+1)
				return StyleRegion{}, false
			}
		case "raw_text":
			text = child
		}
	}
	if text == nil || text.StartByte() == text.EndByte() {
		return StyleRegion{}, false
	}

	pos := text.StartPosition()
	return StyleRegion{
		Content:   string(src[text.StartByte():text.EndByte()]),
		StartByte: text.StartByte(),
		EndByte:   text.EndByte(),
		StartLine: pos.Row,
		StartCol:  pos.Column,
	}, true
}

// attribute returns the value of the named attribute of a start tag
func attribute(tag *sitter.Node, name string, src []byte) (string, bool) {
	for i := uint(0); i < tag.NamedChildCount(); i++ {
		attr := tag.NamedChild(i)
		if attr.Kind() != "attribute" {
			continue
		}

		var attrName, value string
		for j := uint(0); j < attr.NamedChildCount(); j++ {
			part := attr.NamedChild(j)
			switch part.Kind() {
			case "attribute_name":
				attrName = string(src[part.StartByte():part.EndByte()])
			case "attribute_value":
				value = string(src[part.StartByte():part.EndByte()])
			case "quoted_attribute_value":
				value = strings.Trim(string(src[part.StartByte():part.EndByte()]), `"'`)
			}
		}
		if strings.EqualFold(attrName, name) {
			return value, true
		}
	}
	return "", false
}

func isCSSType(typ string) bool {
	typ = strings.TrimSpace(typ)
	return typ == "" || strings.EqualFold(typ, "text/css")
}
