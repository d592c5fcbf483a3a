package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bennypowers.dev/clampwind/internal/documents"
)

// FixtureRoot returns the path to the test fixtures directory
func FixtureRoot() string {
	return filepath.Join("..", "fixtures")
}

// FixturePath returns the path of a fixture below FixtureRoot
func FixturePath(elem ...string) string {
	return filepath.Join(append([]string{FixtureRoot()}, elem...)...)
}

// LoadGoldenFile loads a golden file for comparison
func LoadGoldenFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(FixturePath("golden", name)) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load golden file: %s", name)
	return string(data)
}

// LoadDocument reads a fixture as a document, inferring its language from
// the extension
func LoadDocument(t *testing.T, elem ...string) *documents.Document {
	t.Helper()
	doc, err := documents.ReadDocument(FixturePath(elem...), "")
	require.NoError(t, err, "Failed to load fixture: %s", filepath.Join(elem...))
	return doc
}

// CopyFixture copies a fixture into dir and returns the new path
func CopyFixture(t *testing.T, dir string, elem ...string) string {
	t.Helper()
	data, err := os.ReadFile(FixturePath(elem...)) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err)
	path := filepath.Join(dir, filepath.Base(FixturePath(elem...)))
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
