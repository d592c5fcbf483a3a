// Package tokens reads breakpoints from design token files (DTCG format).
package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/asimonim/resolver"
	"bennypowers.dev/asimonim/schema"
	"bennypowers.dev/asimonim/token"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/clampwind/internal/log"
)

// Token is a design token as parsed by asimonim. Name is the hyphenated
// token path, e.g. "breakpoint-md".
type Token = token.Token

// Manager holds the tokens of every file loaded into it. A token loaded
// later replaces an earlier one of the same name.
type Manager struct {
	tokens map[string]*Token
	mu     sync.RWMutex
}

// NewManager creates an empty token manager
func NewManager() *Manager {
	return &Manager{
		tokens: make(map[string]*Token),
	}
}

// Add stores a token
func (m *Manager) Add(tok *Token) error {
	if tok == nil || tok.Name == "" {
		return errors.New("token name is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[tok.Name] = tok
	return nil
}

// Get retrieves a token by name; dotted paths are accepted
func (m *Manager) Get(name string) *Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[normalizeName(name)]
}

// GetAll returns all tokens sorted by name
func (m *Manager) GetAll() []*Token {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*Token, 0, len(m.tokens))
	for _, t := range m.tokens {
		all = append(all, t)
	}
	slices.SortFunc(all, func(a, b *Token) int {
		return strings.Compare(a.Name, b.Name)
	})
	return all
}

// Count returns the number of tokens
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokens)
}

// LoadFile parses a JSON or YAML token file and adds its tokens. Aliases
// are left for Resolve, so they may point into files loaded later.
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: token file paths come from the user's config
	if err != nil {
		return fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
	case ".yaml", ".yml":
		if data, err = yamlToJSON(data); err != nil {
			return fmt.Errorf("failed to parse token file %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported token file type %s: %s", ext, path)
	}

	parsed, err := asimonimParser.NewJSONParser().Parse(data, asimonimParser.Options{SchemaVersion: schema.Draft})
	if err != nil {
		return fmt.Errorf("failed to parse token file %s: %w", path, err)
	}

	for _, tok := range parsed {
		tok.FilePath = path
		if err := m.Add(tok); err != nil {
			log.Debug("Skipping token in %s: %v", path, err)
		}
	}
	log.Debug("Loaded %d tokens from %s", len(parsed), path)
	return nil
}

// Resolve resolves the aliases of every loaded token. On a circular or
// dangling reference it returns the error; tokens resolved before the
// failure keep their values.
func (m *Manager) Resolve() error {
	all := m.GetAll()
	if len(all) == 0 {
		return nil
	}

	version := schema.Draft
	for _, t := range all {
		if t.SchemaVersion != schema.Unknown {
			version = t.SchemaVersion
			break
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return resolver.ResolveAliases(all, version)
}

// Value returns the CSS value of a token. Aliases must have been resolved;
// an alias left unresolved is an error.
func (m *Manager) Value(name string) (string, error) {
	tok := m.Get(name)
	if tok == nil {
		return "", fmt.Errorf("token not found: %s", name)
	}
	var (
		value string
		err   error
	)
	switch {
	case tok.IsResolved:
		value, err = cssValue(tok.ResolvedValue)
	case tok.RawValue != nil:
		value, err = cssValue(tok.RawValue)
	default:
		value = tok.Value
	}
	if err != nil {
		return "", err
	}
	if strings.Contains(value, "{") {
		return "", fmt.Errorf("unresolved alias %s", value)
	}
	return value, nil
}

// cssValue writes a resolved token value as CSS text. Structured
// dimensions ({"value": 40, "unit": "rem"}) become "40rem".
func cssValue(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case map[string]any:
		value, ok := v["value"]
		if !ok {
			return "", fmt.Errorf("dimension without a value: %v", v)
		}
		number, err := cssValue(value)
		if err != nil {
			return "", err
		}
		unit, _ := v["unit"].(string)
		return number + unit, nil
	default:
		return "", fmt.Errorf("unsupported token value %v", v)
	}
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.TrimPrefix(name, "--"), ".", "-")
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
