package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/uptrace/bun"

	"guideline-rag/internal/chromemdb"
	"guideline-rag/internal/config"
	"guideline-rag/internal/db"
	"guideline-rag/internal/embedding"
	"guideline-rag/internal/extractor"
	"guideline-rag/internal/models"
	"guideline-rag/internal/splitter"
)

var (
	// ErrNoDocuments: the input directory has no files matching the pattern.
	ErrNoDocuments = errors.New("no matching documents found")
	// ErrNoText: no file yielded any extractable text.
	ErrNoText = errors.New("no text extracted from any document")
	// ErrNoChunks: text was extracted but splitting produced nothing.
	ErrNoChunks = errors.New("splitting produced no chunks")
)

// FileExtractor turns one source file into pages. An empty result with a
// nil error means the file has no extractable text.
type FileExtractor interface {
	ExtractFile(path string) ([]models.Page, error)
}

// Options wires the pipeline's stages together.
type Options struct {
	Config    *config.Config
	Extractor FileExtractor
	Splitter  *splitter.Splitter
	Embedder  embeddings.Embedder
	Store     *chromemdb.VectorDBManager
	Mirror    *bun.DB
	DryRun    bool
}

// Pipeline runs the linear ingestion: scan, extract, split, embed, persist.
// Files are processed strictly in sorted order, one at a time.
type Pipeline struct {
	cfg       *config.Config
	extractor FileExtractor
	splitter  *splitter.Splitter
	embedder  embeddings.Embedder
	store     *chromemdb.VectorDBManager
	mirror    *bun.DB
	dryRun    bool
}

// Result contains statistics about one ingestion run.
type Result struct {
	Files    int
	Skipped  int
	Pages    int
	Chunks   int
	Stored   int
	Duration time.Duration
}

func New(opts Options) *Pipeline {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return &Pipeline{
		cfg:       cfg,
		extractor: opts.Extractor,
		splitter:  opts.Splitter,
		embedder:  opts.Embedder,
		store:     opts.Store,
		mirror:    opts.Mirror,
		dryRun:    opts.DryRun,
	}
}

// Run executes the full ingestion and returns run statistics. The three
// sentinel errors mark conditions the caller should treat as fatal;
// everything per-file is logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	files, err := scanDocuments(p.cfg.InputDir, p.cfg.Pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, p.cfg.InputDir)
	}
	result.Files = len(files)
	log.Info().Int("files", len(files)).Str("dir", p.cfg.InputDir).Msg("Found documents")

	var allPages []models.Page
	for _, file := range files {
		pages, err := p.extractor.ExtractFile(file)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Extraction failed, skipping file")
			result.Skipped++
			continue
		}
		totalChars := extractor.TotalChars(pages)
		if totalChars == 0 {
			log.Warn().Str("file", file).Msg("No extractable text (likely scanned), skipping file")
			result.Skipped++
			continue
		}
		log.Info().Str("file", file).Int("pages", len(pages)).Int("chars", totalChars).Msg("Extracted document")
		allPages = append(allPages, pages...)
	}
	if len(allPages) == 0 {
		return nil, fmt.Errorf("%w; if they are scanned, run OCR (e.g. ocrmypdf) and re-run", ErrNoText)
	}
	result.Pages = len(allPages)

	chunks, err := p.splitter.SplitPages(allPages)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w; adjust splitter settings", ErrNoChunks)
	}
	result.Chunks = len(chunks)
	log.Info().Int("chunks", len(chunks)).Msg("Split documents")

	if p.dryRun {
		result.Duration = time.Since(start)
		log.Info().Msg("Dry run, skipping embedding and persistence")
		return result, nil
	}

	if p.cfg.RAG.EnrichContext {
		chunks = p.enrichChunks(ctx, allPages, chunks)
	}

	chunkEmbeddings, err := embedding.GenerateEmbeddings(ctx, p.embedder, chunks)
	if err != nil {
		return nil, fmt.Errorf("generate embeddings: %w", err)
	}

	if err := p.store.AddChunks(ctx, chunkEmbeddings); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}
	result.Stored = p.store.Count()

	if p.mirror != nil {
		docs := make([]db.Document, len(chunkEmbeddings))
		for i, ce := range chunkEmbeddings {
			docs[i] = db.Document{
				Content:        ce.Content,
				Embedding:      ce.Embedding,
				SourceFilename: ce.SourceFilename,
				PageNumber:     ce.PageNumber,
				ChunkID:        ce.ChunkID,
			}
		}
		if err := db.StoreDocuments(ctx, p.mirror, docs); err != nil {
			return nil, fmt.Errorf("mirror chunks: %w", err)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// enrichChunks prepends an LLM-generated situating context to each chunk.
// Enrichment failures leave the chunk as-is.
func (p *Pipeline) enrichChunks(ctx context.Context, pages []models.Page, chunks []models.Chunk) []models.Chunk {
	pageText := make(map[string]string, len(chunks))
	for _, page := range pages {
		key := fmt.Sprintf("%s#%d", page.Source, page.Number)
		pageText[key] = page.Text
	}
	for i, chunk := range chunks {
		document := pageText[fmt.Sprintf("%s#%d", chunk.Source, chunk.PageNumber)]
		situating, err := embedding.GenerateContext(ctx, &p.cfg.ChatLLM, document, chunk.Content)
		if err != nil {
			log.Warn().Err(err).Str("chunk", chunk.ID()).Msg("Context enrichment failed")
			continue
		}
		chunks[i].Content = situating + models.ContextSeparator + chunk.Content
	}
	return chunks
}

// scanDocuments lists matching files in sorted order
func scanDocuments(dir, pattern string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
