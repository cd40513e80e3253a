package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"guideline-rag/internal/config"
)

// Document mirrors a persisted chunk record in Postgres
type Document struct {
	bun.BaseModel  `bun:"table:documents,alias:d"`
	ID             int64     `bun:"id,pk,autoincrement"`
	Content        string    `bun:"content,notnull"`
	Embedding      []float32 `bun:"embedding,notnull,type:vector(768)"`
	SourceFilename string    `bun:"source_filename,notnull"`
	PageNumber     int       `bun:"page_number,notnull"`
	ChunkID        int       `bun:"chunk_id,notnull"`
}

func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is not configured")
	}
	dsn := cfg.DSN + "?sslmode=disable"
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(cfg.Key))), nil
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func InitDB(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return err
	}
	_, err := db.NewCreateTable().Model((*Document)(nil)).IfNotExists().Exec(ctx)
	return err
}

func StoreDocuments(ctx context.Context, db *bun.DB, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := db.NewInsert().Model(&docs).Exec(ctx)
	return err
}

// drop table documents

func DropDocuments(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDropTable().Model((*Document)(nil)).IfExists().Exec(ctx)
	return err
}
