// Package sitterpool keeps tree-sitter parsers, each with its compiled
// queries, for reuse across documents.
package sitterpool

import (
	"errors"
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrNoTree is returned when tree-sitter produces no tree for the source
var ErrNoTree = errors.New("tree-sitter returned no tree")

// Parser is a tree-sitter parser bound to one language, with the pool's
// queries compiled for it
type Parser struct {
	parser  *sitter.Parser
	queries map[string]*sitter.Query
}

// Parse parses source. The caller closes the returned tree.
func (p *Parser) Parse(source []byte) (*sitter.Tree, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, ErrNoTree
	}
	return tree, nil
}

// Query returns the compiled query registered under name, or nil
func (p *Parser) Query(name string) *sitter.Query {
	return p.queries[name]
}

// Close releases the parser and its queries
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	for _, q := range p.queries {
		q.Close()
	}
}

// Pool hands out parsers for a single language
type Pool struct {
	name    string
	lang    *sitter.Language
	queries map[string]string
	idle    sync.Pool
}

// New returns a pool of parsers for lang. Queries maps a name to query
// source; each parser compiles its own copy. An invalid query panics on
// first use.
func New(name string, lang *sitter.Language, queries map[string]string) *Pool {
	return &Pool{name: name, lang: lang, queries: queries}
}

func (p *Pool) newParser() *Parser {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(p.lang); err != nil {
		panic(fmt.Sprintf("failed to set %s language: %v", p.name, err))
	}

	compiled := make(map[string]*sitter.Query, len(p.queries))
	for name, src := range p.queries {
		q, qerr := sitter.NewQuery(p.lang, src)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile %s %s query: %v", p.name, name, qerr))
		}
		compiled[name] = q
	}

	return &Parser{parser: parser, queries: compiled}
}

// Name is the language name the pool was created with
func (p *Pool) Name() string {
	return p.name
}

// Acquire gets a reset parser from the pool, creating one when none is idle
func (p *Pool) Acquire() *Parser {
	if parser, ok := p.idle.Get().(*Parser); ok {
		parser.parser.Reset()
		return parser
	}
	return p.newParser()
}

// Release returns a parser to the pool
func (p *Pool) Release(parser *Parser) {
	if parser != nil {
		p.idle.Put(parser)
	}
}

// Close closes the idle parsers held by the pool. Parsers acquired later
// are created afresh.
func (p *Pool) Close() {
	for {
		parser, ok := p.idle.Get().(*Parser)
		if !ok {
			return
		}
		parser.Close()
	}
}
