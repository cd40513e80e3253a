package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"guideline-rag/internal/chromemdb"
	"guideline-rag/internal/config"
	"guideline-rag/internal/db"
	"guideline-rag/internal/embedding"
	"guideline-rag/internal/extractor"
	"guideline-rag/internal/helper"
	"guideline-rag/internal/pipeline"
	"guideline-rag/internal/splitter"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	inputDir := flag.String("dir", "", "Directory with documents to ingest (overrides config)")
	outputDir := flag.String("out", "", "Directory for the persisted vector store (overrides config)")
	dryRun := flag.Bool("dry-run", false, "Extract and split only, do not embed or persist")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Warn().Err(err).Msg("Could not load config file, using defaults")
		cfg = config.Default()
	}
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	log.Debug().Interface("config", cfg).Msg("Loaded config")

	ingest(context.Background(), cfg, *dryRun)
}

func ingest(ctx context.Context, cfg *config.Config, dryRun bool) {
	runID, err := helper.GenerateUUID()
	if err != nil {
		log.Fatal().Err(err).Msg("Error generating run id")
	}
	log.Info().Str("run_id", runID).Msg("Starting ingestion")

	if err := helper.CreateFolder(cfg.OutputDir); err != nil {
		log.Fatal().Err(err).Msg("Error creating vector store folder")
	}

	store, err := chromemdb.NewVectorDBManager(cfg.OutputDir, cfg.Collection, false, cfg.RAG.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector database manager")
	}
	if _, err := store.GetOrCreateCollection(cfg.Collection); err != nil {
		log.Fatal().Err(err).Msg("Error creating collection")
	}

	emb, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	opts := pipeline.Options{
		Config:    cfg,
		Extractor: extractor.New(),
		Splitter:  splitter.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap),
		Embedder:  emb,
		Store:     store,
		DryRun:    dryRun,
	}

	if cfg.Database.Enabled {
		dbClient, err := db.ConnectDB(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to database")
		}
		mirror := db.NewDB(dbClient, cfg.Database.Debug)
		defer mirror.Close()

		if err := db.InitDB(ctx, mirror); err != nil {
			log.Fatal().Err(err).Msg("Error initializing database")
		}
		opts.Mirror = mirror
	}

	result, err := pipeline.New(opts).Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrNoDocuments),
			errors.Is(err, pipeline.ErrNoText),
			errors.Is(err, pipeline.ErrNoChunks):
			log.Fatal().Msg(err.Error())
		default:
			log.Fatal().Err(err).Msg("Ingestion failed")
		}
	}

	if dryRun {
		helper.PrettyPrint(result)
	}

	// with an encryption key configured, also write an encrypted snapshot
	if !dryRun && cfg.RAG.EncryptionKey != "" {
		if err := store.Export(ctx); err != nil {
			log.Fatal().Err(err).Msg("Error exporting collection")
		}
	}

	log.Info().
		Int("files", result.Files).
		Int("skipped", result.Skipped).
		Int("pages", result.Pages).
		Int("chunks", result.Chunks).
		Int("stored", result.Stored).
		Dur("duration", result.Duration).
		Str("store", cfg.OutputDir).
		Msg("Ingestion complete")
}
