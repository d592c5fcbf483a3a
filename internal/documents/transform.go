package documents

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/clampwind/internal/clamp"
	"bennypowers.dev/clampwind/internal/cssast"
	"bennypowers.dev/clampwind/internal/log"
	"bennypowers.dev/clampwind/internal/parser"
	"bennypowers.dev/clampwind/internal/parser/css"
)

// Result is the outcome of transforming one document
type Result struct {
	// Content is the full document text after the transform
	Content string
	// Changed is true when at least one region was rewritten
	Changed bool
	// Expanded counts the placeholders replaced across all regions
	Expanded int
	// Diagnostics are positioned in document coordinates (1-based)
	Diagnostics []clamp.Diagnostic
}

const whitespace = " \t\r\n\f"

// Transform expands the clamp placeholders of every CSS region in doc. Each
// region is parsed and processed as a stylesheet of its own. Regions that
// did not change keep their original bytes; changed regions are reprinted
// and spliced back in place. The document itself is not modified.
//
// A region with syntax errors fails the whole document so that broken input
// is never rewritten.
func Transform(doc *Document, opts clamp.Options) (*Result, error) {
	content := doc.Content()
	regions := parser.CSSRegions(content, doc.LanguageID())
	result := &Result{Content: content}

	replacements := make(map[int]string, len(regions))
	for i, region := range regions {
		root, err := css.Parse(region.Content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Path(), shiftErrors(err, region))
		}

		report := clamp.New(opts).Process(root)
		for _, d := range report.Diagnostics {
			result.Diagnostics = append(result.Diagnostics, shiftDiagnostic(d, region))
		}
		if !report.Changed {
			continue
		}

		replacements[i] = reprint(region.Content, cssast.Stringify(root))
		result.Expanded += report.Expanded
		result.Changed = true
		log.Debug("%s: rewrote region at %d:%d (%d expanded)", doc.Path(), region.Line+1, region.Column+1, report.Expanded)
	}

	if !result.Changed {
		return result, nil
	}

	// splice from the end so earlier offsets stay valid
	for i := len(regions) - 1; i >= 0; i-- {
		replacement, ok := replacements[i]
		if !ok {
			continue
		}
		r := regions[i]
		content = content[:r.Start] + replacement + content[r.End:]
	}
	result.Content = content
	return result, nil
}

// reprint wraps printed CSS in the whitespace that surrounded the original
// region, indenting every line to the original's first line
func reprint(original, printed string) string {
	body := strings.TrimRight(printed, "\n")
	trimmed := strings.TrimLeft(original, whitespace)
	leading := original[:len(original)-len(trimmed)]
	trailing := trimmed[len(strings.TrimRight(trimmed, whitespace)):]

	prefix, indent := leading, ""
	if nl := strings.LastIndexByte(leading, '\n'); nl >= 0 {
		prefix, indent = leading[:nl+1], leading[nl+1:]
	}

	if indent != "" {
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = indent + line
			}
		}
		body = strings.Join(lines, "\n")
	}
	return prefix + body + trailing
}

// shiftDiagnostic moves a region-relative diagnostic into document coordinates
func shiftDiagnostic(d clamp.Diagnostic, region parser.Region) clamp.Diagnostic {
	if d.Line == 0 {
		return d
	}
	if d.Line == 1 {
		d.Column += region.Column
	}
	d.Line += region.Line
	return d
}

// shiftErrors moves the positions of a css.ErrorList into document coordinates
func shiftErrors(err error, region parser.Region) error {
	var list css.ErrorList
	if !errors.As(err, &list) {
		return err
	}
	shifted := make(css.ErrorList, len(list))
	for i, e := range list {
		moved := *e
		if moved.Line == 1 {
			moved.Column += region.Column
		}
		moved.Line += region.Line
		shifted[i] = &moved
	}
	return shifted
}
