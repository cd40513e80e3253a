package chromemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guideline-rag/internal/models"
)

func newTestManager(t *testing.T) *VectorDBManager {
	t.Helper()
	m, err := NewVectorDBManager(t.TempDir(), "test_collection", true, "")
	require.NoError(t, err)
	_, err = m.GetOrCreateCollection("test_collection")
	require.NoError(t, err)
	return m
}

func TestAddChunksAndCount(t *testing.T) {
	m := newTestManager(t)

	chunkEmbeddings := []models.ChunkEmbedding{
		{
			Content:        "first chunk",
			Embedding:      []float32{1, 0, 0},
			SourceFilename: "/docs/a.pdf",
			PageNumber:     1,
			ChunkID:        1,
		},
		{
			Content:        "second chunk",
			Embedding:      []float32{0, 1, 0},
			SourceFilename: "/docs/a.pdf",
			PageNumber:     1,
			ChunkID:        2,
		},
	}

	require.NoError(t, m.AddChunks(context.Background(), chunkEmbeddings))
	assert.Equal(t, 2, m.Count())
}

func TestAddChunks_RequiresCollection(t *testing.T) {
	m, err := NewVectorDBManager(t.TempDir(), "test_collection", true, "")
	require.NoError(t, err)

	err = m.AddChunks(context.Background(), []models.ChunkEmbedding{
		{Content: "x", Embedding: []float32{1, 0, 0}, SourceFilename: "a.pdf", PageNumber: 1, ChunkID: 1},
	})
	require.Error(t, err)
}

func TestExport_RequiresEncryptionKey(t *testing.T) {
	m := newTestManager(t)
	err := m.Export(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encryption key")
}

func TestCount_EmptyCollection(t *testing.T) {
	m := newTestManager(t)
	assert.Equal(t, 0, m.Count())
}
