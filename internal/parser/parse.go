// Package parser locates the CSS inside supported documents: whole
// stylesheets, HTML <style> elements and css tagged templates in JS/TS.
package parser

import (
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/clampwind/internal/parser/css"
	"bennypowers.dev/clampwind/internal/parser/html"
	"bennypowers.dev/clampwind/internal/parser/js"
)

// cssLanguages maps language IDs to the parser category they use.
// "css" → direct CSS, "html" → HTML parser, "js" → JS parser.
var cssLanguages = map[string]string{
	"css":             "css",
	"html":            "html",
	"javascript":      "js",
	"javascriptreact": "js",
	"typescript":      "js",
	"typescriptreact": "js",
}

var extensionLanguages = map[string]string{
	".css":  "css",
	".html": "html",
	".htm":  "html",
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".jsx":  "javascriptreact",
	".ts":   "typescript",
	".mts":  "typescript",
	".cts":  "typescript",
	".tsx":  "typescriptreact",
}

// Region is a span of CSS inside a document
type Region struct {
	Content string
	// Start and End are byte offsets of Content in the document
	Start int
	End   int
	// Line and Column locate Start; both are 0-indexed
	Line   int
	Column int
}

// ClosePools closes the idle tree-sitter parsers of every language
func ClosePools() {
	css.ClosePool()
	html.ClosePool()
	js.ClosePool()
}

// IsCSSSupportedLanguage returns true if the language supports CSS extraction
func IsCSSSupportedLanguage(languageID string) bool {
	_, ok := cssLanguages[languageID]
	return ok
}

// LanguageForPath returns the language ID for a file path from its
// extension, or "" when the file type is not supported
func LanguageForPath(path string) string {
	return extensionLanguages[strings.ToLower(filepath.Ext(path))]
}

// CSSRegions returns the CSS regions of a document in source order.
// For CSS files this is the entire content; for HTML it is every <style>
// element; for JS/TS it is every css tagged template plus the <style>
// elements of html tagged templates.
func CSSRegions(content, languageID string) []Region {
	switch cssLanguages[languageID] {
	case "css":
		return []Region{{Content: content, End: len(content)}}

	case "html":
		return styleRegions(content, 0, 0, 0)

	case "js":
		p := js.AcquireParser()
		defer js.ReleaseParser(p)

		var regions []Region
		for _, tmpl := range p.ParseTemplates(content) {
			switch tmpl.Tag {
			case "css":
				regions = append(regions, Region{
					Content: tmpl.Content,
					Start:   int(tmpl.StartByte),
					End:     int(tmpl.EndByte),
					Line:    int(tmpl.StartLine),
					Column:  int(tmpl.StartCol),
				})
			case "html":
				regions = append(regions, styleRegions(tmpl.Content, int(tmpl.StartByte), int(tmpl.StartLine), int(tmpl.StartCol))...)
			}
		}
		slices.SortFunc(regions, func(a, b Region) int {
			return a.Start - b.Start
		})
		return regions

	default:
		return nil
	}
}

// styleRegions finds <style> elements in HTML that itself starts at the given
// offset, line and column of the enclosing document
func styleRegions(content string, offset, line, column int) []Region {
	p := html.AcquireParser()
	defer html.ReleaseParser(p)

	found := p.ParseStyleRegions(content)
	regions := make([]Region, 0, len(found))
	for _, r := range found {
		col := int(r.StartCol)
		if r.StartLine == 0 {
			col += column
		}
		regions = append(regions, Region{
			Content: r.Content,
			Start:   offset + int(r.StartByte),
			End:     offset + int(r.EndByte),
			Line:    line + int(r.StartLine),
			Column:  col,
		})
	}
	return regions
}
