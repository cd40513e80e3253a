package splitter

import (
	"guideline-rag/internal/models"

	"github.com/tmc/langchaingo/textsplitter"
)

// Splitter breaks extracted pages into overlapping chunks. Each page is
// split independently so every chunk stays attributable to its page.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	ts           textsplitter.RecursiveCharacter
}

func New(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		ts: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}
}

// SplitPages converts pages into chunks with source metadata.
// Chunk IDs are 1-based within each page.
func (s *Splitter) SplitPages(pages []models.Page) ([]models.Chunk, error) {
	var chunks []models.Chunk
	for _, page := range pages {
		parts, err := s.ts.SplitText(page.Text)
		if err != nil {
			return nil, err
		}
		id := 0
		for _, part := range parts {
			if part == "" {
				continue
			}
			id++
			chunks = append(chunks, models.Chunk{
				Content:    part,
				Source:     page.Source,
				PageNumber: page.Number,
				ChunkID:    id,
			})
		}
	}
	return chunks, nil
}
