package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/config"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/handlers"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/http"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/llm"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/pipeline"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/query"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/retrieval"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/store"
	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/tags"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize the document index
	db, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := store.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Document index initialized", "path", cfg.DBPath)

	keyword := store.NewSQLiteStore(db)

	ctx := context.Background()

	// The vector channel is optional: it needs both an embeddings endpoint
	// and a reachable Qdrant collection.
	var embedder query.Embedder
	var vectorChecker handlers.VectorChecker
	docs := store.NewHybrid(keyword, nil)
	if cfg.EmbeddingBaseURL != "" {
		vectors, err := store.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := vectors.EnsureCollection(ctx, uint64(cfg.QdrantVectorSize)); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

		embedClient := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		vector, err := embedClient.EmbedQuery(ctx, "test")
		if err != nil {
			log.Fatalf("Failed to validate embedding client: %v", err)
		}
		if len(vector) != cfg.QdrantVectorSize {
			log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(vector))
		}
		slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

		embedder = embedClient
		vectorChecker = vectors
		docs = store.NewHybrid(keyword, vectors)
	} else {
		slog.Info("Vector channel disabled; lexical and title channels only")
	}

	limits, err := tags.LoadLimits(cfg.TagLimitsPath)
	if err != nil {
		log.Fatalf("Failed to load tag limits: %v", err)
	}

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	engine := pipeline.NewEngine(
		query.NewBuilder(query.Heuristic{}, embedder),
		retrieval.NewFuser(docs, retrieval.DefaultWeights),
		limits,
		llmClient,
		pipeline.DefaultOptions(),
	)
	slog.Info("Pipeline engine initialized")

	deps := &http.Deps{
		Engine:  engine,
		DB:      db,
		Vectors: vectorChecker,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
