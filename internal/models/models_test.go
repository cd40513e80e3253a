package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkID(t *testing.T) {
	chunk := Chunk{
		Source:     "/data/guidelines/discharge.pdf",
		PageNumber: 4,
		ChunkID:    2,
	}
	assert.Equal(t, "discharge.pdf-p4-c2", chunk.ID())

	// same inputs, same identity
	assert.Equal(t, chunk.ID(), chunk.ID())
}
