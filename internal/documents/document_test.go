package documents_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/clampwind/internal/documents"
)

func TestNewDocument(t *testing.T) {
	doc := documents.NewDocument("styles.css", "css", ".a {}")

	assert.Equal(t, "styles.css", doc.Path())
	assert.Equal(t, "css", doc.LanguageID())
	assert.Equal(t, ".a {}", doc.Content())

	doc.SetContent(".b {}")
	assert.Equal(t, ".b {}", doc.Content())
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const s = css``;"), 0o600))

	doc, err := documents.ReadDocument(path, "")
	require.NoError(t, err)
	assert.Equal(t, "typescript", doc.LanguageID())
	assert.Equal(t, "export const s = css``;", doc.Content())

	doc, err = documents.ReadDocument(path, "css")
	require.NoError(t, err)
	assert.Equal(t, "css", doc.LanguageID(), "an explicit language wins over the extension")
}

func TestReadDocumentErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := documents.ReadDocument(filepath.Join(dir, "missing.css"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = documents.ReadDocument(filepath.Join(dir, "tokens.json"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
