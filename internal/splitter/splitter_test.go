package splitter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guideline-rag/internal/models"
)

func TestSplitPages_ShortPageSingleChunk(t *testing.T) {
	s := New(1000, 150)
	pages := []models.Page{
		{Source: "a.pdf", Number: 1, Text: "hello world"},
	}

	chunks, err := s.SplitPages(pages)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0].Content)
	assert.Equal(t, "a.pdf", chunks[0].Source)
	assert.Equal(t, 1, chunks[0].PageNumber)
	assert.Equal(t, 1, chunks[0].ChunkID)
}

func TestSplitPages_LongPageOverlappingChunks(t *testing.T) {
	s := New(1000, 150)
	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet consectetur adipiscing elit ", 120))
	pages := []models.Page{
		{Source: "a.pdf", Number: 3, Text: text},
	}

	chunks, err := s.SplitPages(pages)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk.Content), 1000)
		assert.NotEmpty(t, strings.TrimSpace(chunk.Content))
		assert.Equal(t, 3, chunk.PageNumber)
		assert.Equal(t, i+1, chunk.ChunkID)
	}
}

func TestSplitPages_Deterministic(t *testing.T) {
	s := New(1000, 150)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 100)
	pages := []models.Page{
		{Source: "a.pdf", Number: 1, Text: text},
		{Source: "b.pdf", Number: 1, Text: text},
	}

	first, err := s.SplitPages(pages)
	require.NoError(t, err)
	second, err := s.SplitPages(pages)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSplitPages_PagesSplitIndependently(t *testing.T) {
	s := New(1000, 150)
	pages := []models.Page{
		{Source: "a.pdf", Number: 1, Text: "first page text"},
		{Source: "a.pdf", Number: 2, Text: "second page text"},
	}

	chunks, err := s.SplitPages(pages)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].PageNumber)
	assert.Equal(t, 2, chunks[1].PageNumber)
	// chunk IDs restart per page
	assert.Equal(t, 1, chunks[0].ChunkID)
	assert.Equal(t, 1, chunks[1].ChunkID)
}

func TestSplitPages_EmptyPageYieldsNothing(t *testing.T) {
	s := New(1000, 150)
	chunks, err := s.SplitPages([]models.Page{{Source: "a.pdf", Number: 1, Text: ""}})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
