// Package documents holds the files clampwind rewrites and splices the
// processed CSS regions back into them.
package documents

import (
	"fmt"
	"os"

	"bennypowers.dev/clampwind/internal/parser"
)

// Document is a source file holding one or more CSS regions
type Document struct {
	path       string
	languageID string
	content    string
}

// NewDocument creates a new document
func NewDocument(path, languageID, content string) *Document {
	return &Document{
		path:       path,
		languageID: languageID,
		content:    content,
	}
}

// ReadDocument loads a document from disk. An empty languageID is inferred
// from the file extension.
func ReadDocument(path, languageID string) (*Document, error) {
	if languageID == "" {
		languageID = parser.LanguageForPath(path)
	}
	if !parser.IsCSSSupportedLanguage(languageID) {
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewDocument(path, languageID, string(data)), nil
}

// Path returns the document's path; "-" for standard input
func (d *Document) Path() string {
	return d.path
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Content returns the document's current content
func (d *Document) Content() string {
	return d.content
}

// SetContent replaces the document's content
func (d *Document) SetContent(content string) {
	d.content = content
}
