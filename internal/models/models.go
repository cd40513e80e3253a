package models

import (
	"fmt"
	"path/filepath"
)

// Page is one extracted page of a source document
type Page struct {
	Source string
	Number int
	Text   string
}

// Chunk represents a split chunk with metadata
type Chunk struct {
	Content    string
	Source     string
	PageNumber int
	ChunkID    int
}

// ID returns the stable identity of a chunk within the store,
// derived from source file, page and chunk position so that two
// runs over the same input produce the same IDs
func (c Chunk) ID() string {
	return fmt.Sprintf("%s-p%d-c%d", filepath.Base(c.Source), c.PageNumber, c.ChunkID)
}

// ChunkEmbedding is the persisted record: chunk text, vector and source metadata
type ChunkEmbedding struct {
	Content        string
	Embedding      []float32
	SourceFilename string
	PageNumber     int
	ChunkID        int
}
