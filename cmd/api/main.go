package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"

	"proposalqa/internal/answer"
	"proposalqa/internal/config"
	"proposalqa/internal/http"
	"proposalqa/internal/ingest"
	"proposalqa/internal/knowledge"
	"proposalqa/internal/llm"
	"proposalqa/internal/storage"
	"proposalqa/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	entryRepo := storage.NewEntryRepo(db)

	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate the embedding server's vector size before serving traffic.
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d", cfg.QdrantVectorSize)
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	base := knowledge.NewBase(embedder, vectorStore, entryRepo, cfg.QdrantCollection, cfg.QdrantVectorSize)

	generator := llm.NewGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel)

	engine := answer.NewEngine(base, generator, answer.Options{
		Workers:         cfg.AnswerWorkers,
		QuestionTimeout: cfg.GenerationTimeout,
	})
	slog.Info("Answer engine initialized", "workers", cfg.AnswerWorkers, "timeout", cfg.GenerationTimeout)

	deps := &http.Deps{
		Engine:     engine,
		Retriever:  answer.NewRetriever(base),
		Base:       base,
		Processor:  ingest.NewProcessor(),
		Store:      vectorStore,
		Collection: cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	// Seed the knowledge base from disk after the router is ready.
	if cfg.KnowledgeDir != "" {
		go func() {
			seedCtx := context.Background()
			slog.Info("Loading knowledge directory", "dir", cfg.KnowledgeDir)
			entries, err := deps.Processor.LoadDir(seedCtx, cfg.KnowledgeDir)
			if err != nil {
				slog.Error("Knowledge directory load failed", "error", err)
				return
			}
			if len(entries) == 0 {
				slog.Info("No Q&A entries found in knowledge directory")
				return
			}
			if err := base.Upsert(seedCtx, entries); err != nil {
				slog.Error("Failed to store seeded entries", "error", err)
				return
			}
			slog.Info("Knowledge directory loaded", "entries", len(entries))
		}()
	}

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
