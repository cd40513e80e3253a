package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guideline-rag/internal/models"
)

func TestExtractFile_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hospital discharge guidelines\nrevision four"), 0o644))

	e := New()
	pages, err := e.ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, path, pages[0].Source)
	assert.Equal(t, 1, pages[0].Number)
	assert.Contains(t, pages[0].Text, "hospital discharge guidelines")
	assert.Contains(t, pages[0].Text, "revision four")
}

func TestExtractFile_EmptyTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n\t\n"), 0o644))

	e := New()
	pages, err := e.ExtractFile(path)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestExtractFile_UnsupportedFormat(t *testing.T) {
	e := New()
	_, err := e.ExtractFile("document.epub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestTotalChars(t *testing.T) {
	assert.Equal(t, 0, TotalChars(nil))
	assert.Equal(t, 0, TotalChars([]models.Page{
		{Text: "   "},
		{Text: "\n\t"},
	}))
	assert.Equal(t, 10, TotalChars([]models.Page{
		{Text: " hello "},
		{Text: "world\n"},
	}))
}
