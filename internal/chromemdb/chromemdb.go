package chromemdb

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"guideline-rag/internal/models"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
)

// VectorDBManager encapsulates the chromem-go database operations
type VectorDBManager struct {
	db            *chromem.DB
	collection    *chromem.Collection
	dbPath        string
	compress      bool
	encryptionKey string
	filePath      string
}

const (
	compress = false
)

// NewVectorDBManager initializes a new vector database manager.
// With inMemory set the store never touches disk (used by tests and dry runs).
func NewVectorDBManager(dbPath, collectionName string, inMemory bool, encryptionKey string) (*VectorDBManager, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}

	return &VectorDBManager{
		db:            db,
		collection:    nil,
		dbPath:        dbPath,
		compress:      compress,
		encryptionKey: encryptionKey,
		filePath:      filepath.Join(dbPath, collectionName+".chromem"),
	}, nil
}

// create or read collection
func (m *VectorDBManager) GetOrCreateCollection(collectionName string) (*chromem.Collection, error) {
	c, err := m.db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}
	m.collection = c
	return c, nil
}

// AddChunks persists embedded chunks as documents. IDs are derived from
// source file, page and chunk index, so re-ingesting the same input
// overwrites rather than duplicates.
func (m *VectorDBManager) AddChunks(ctx context.Context, chunkEmbeddings []models.ChunkEmbedding) error {
	if m.collection == nil {
		return fmt.Errorf("collection is required")
	}
	docs := make([]chromem.Document, 0, len(chunkEmbeddings))
	for _, ce := range chunkEmbeddings {
		chunk := models.Chunk{
			Source:     ce.SourceFilename,
			PageNumber: ce.PageNumber,
			ChunkID:    ce.ChunkID,
		}
		docs = append(docs, chromem.Document{
			ID:      chunk.ID(),
			Content: ce.Content,
			Metadata: map[string]string{
				"source": filepath.Base(ce.SourceFilename),
				"page":   strconv.Itoa(ce.PageNumber),
				"chunk":  strconv.Itoa(ce.ChunkID),
			},
			Embedding: ce.Embedding,
		})
	}
	return m.CreateDocs(ctx, docs)
}

// add multiple documents
func (m *VectorDBManager) CreateDocs(ctx context.Context, documents []chromem.Document) error {
	err := m.collection.AddDocuments(ctx, documents, runtime.NumCPU())
	if err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

// Count returns the number of documents in the collection
func (m *VectorDBManager) Count() int {
	if m.collection == nil {
		return 0
	}
	return m.collection.Count()
}

// delete collection
func (m *VectorDBManager) DeleteCollection() error {
	err := m.db.DeleteCollection(m.collection.Name)
	if err != nil {
		return fmt.Errorf("failed to drop collection: %v", err)
	}
	return nil
}

// export to file
func (m *VectorDBManager) Export(ctx context.Context) error {
	if m.encryptionKey == "" {
		return fmt.Errorf("encryption key is required")
	}
	if m.collection == nil {
		return fmt.Errorf("collection is required")
	}
	if m.dbPath == "" {
		return fmt.Errorf("db path is required")
	}

	log.Debug().Msgf("Exporting collection %s to %s", m.collection.Name, m.filePath)
	err := m.db.ExportToFile(m.filePath, m.compress, m.encryptionKey, m.collection.Name)
	if err != nil {
		return fmt.Errorf("failed to export database: %v", err)
	}
	return nil
}

// import from file
func (m *VectorDBManager) Import(ctx context.Context) error {
	if m.collection == nil {
		return fmt.Errorf("collection is required")
	}
	err := m.db.ImportFromFile(m.filePath, m.encryptionKey, m.collection.Name)
	if err != nil {
		return fmt.Errorf("failed to import database: %v", err)
	}
	return nil
}
