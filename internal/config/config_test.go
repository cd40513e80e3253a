package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
input_dir: /tmp/guidelines
collection: handbook
rag:
  chunk_size: 500
embed_llm:
  model: all-minilm
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// explicit values survive
	assert.Equal(t, "/tmp/guidelines", cfg.InputDir)
	assert.Equal(t, "handbook", cfg.Collection)
	assert.Equal(t, 500, cfg.RAG.ChunkSize)
	assert.Equal(t, "all-minilm", cfg.EmbedLLM.Model)

	// gaps are filled with defaults
	assert.Equal(t, "./vectorstore/chromem", cfg.OutputDir)
	assert.Equal(t, "*.pdf", cfg.Pattern)
	assert.Equal(t, 150, cfg.RAG.ChunkOverlap)
	assert.Equal(t, "ollama", cfg.EmbedLLM.Provider)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "*.pdf", cfg.Pattern)
	assert.Equal(t, 1000, cfg.RAG.ChunkSize)
	assert.Equal(t, 150, cfg.RAG.ChunkOverlap)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedLLM.Model)
	assert.False(t, cfg.Database.Enabled)
}
