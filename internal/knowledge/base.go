package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"proposalqa/internal/contextutil"
	"proposalqa/internal/storage"
	"proposalqa/internal/vectorstore"
)

// Embedder turns texts into fixed-size vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Base is the Q&A knowledge base: entry text and metadata live in SQLite,
// embeddings live in the vector store under the same IDs. It owns all
// consistency guarantees for its own storage; callers may read
// concurrently, writes happen only during ingestion and Clear.
type Base struct {
	embedder   Embedder
	vectors    vectorstore.Store
	entries    storage.EntryStore
	collection string
	vectorSize int
	logger     *slog.Logger
}

// NewBase creates a knowledge base.
func NewBase(embedder Embedder, vectors vectorstore.Store, entries storage.EntryStore, collection string, vectorSize int) *Base {
	return &Base{
		embedder:   embedder,
		vectors:    vectors,
		entries:    entries,
		collection: collection,
		vectorSize: vectorSize,
		logger:     slog.Default(),
	}
}

// Upsert embeds and stores the given entries. The question and answer are
// combined into one document so the embedding captures both sides of the
// pair.
func (b *Base) Upsert(ctx context.Context, entries []QAEntry) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = combinedText(entry)
	}

	vectors, err := b.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed entries: %w", err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("expected %d embeddings, got %d", len(entries), len(vectors))
	}

	points := make([]vectorstore.Point, len(entries))
	for i, entry := range entries {
		points[i] = vectorstore.Point{
			ID:  entry.ID,
			Vec: vectors[i],
			Meta: map[string]any{
				"category": entry.Category,
			},
		}
	}

	if err := b.vectors.Upsert(ctx, b.collection, points); err != nil {
		return fmt.Errorf("failed to index entries: %w", err)
	}

	for i := range entries {
		record := &storage.EntryRecord{
			ID:       entries[i].ID,
			Question: entries[i].Question,
			Answer:   entries[i].Answer,
			Category: entries[i].Category,
			Client:   entries[i].Client,
		}
		if err := b.entries.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to store entry %s: %w", entries[i].ID, err)
		}
	}

	logger.InfoContext(ctx, "entries added to knowledge base", "count", len(entries))
	return nil
}

// Query embeds the text and returns the k nearest entries, optionally
// restricted to one category. The returned distance is derived from the
// index's similarity so that 0 means identical and larger means farther.
func (b *Base) Query(ctx context.Context, text string, k int, category string) ([]Hit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	vectors, err := b.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := b.vectors.Search(ctx, b.collection, vectors[0], k, category)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, result := range results {
		record, err := b.entries.GetByID(ctx, result.PointID)
		if errors.Is(err, storage.ErrNotFound) {
			// Point without a backing row, e.g. a half-finished ingest.
			logger.WarnContext(ctx, "dangling vector point", "id", result.PointID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load entry %s: %w", result.PointID, err)
		}

		hits = append(hits, Hit{
			Entry: QAEntry{
				ID:        record.ID,
				Question:  record.Question,
				Answer:    record.Answer,
				Category:  record.Category,
				Client:    record.Client,
				CreatedAt: record.CreatedAt,
			},
			Distance: distanceFromScore(result.Score),
		})
	}

	logger.DebugContext(ctx, "knowledge base queried", "k", k, "category", category, "hits", len(hits))
	return hits, nil
}

// ListByCategory returns up to limit entries in a category, newest first.
func (b *Base) ListByCategory(ctx context.Context, category string, limit int) ([]QAEntry, error) {
	records, err := b.entries.ListByCategory(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	entries := make([]QAEntry, len(records))
	for i, record := range records {
		entries[i] = QAEntry{
			ID:        record.ID,
			Question:  record.Question,
			Answer:    record.Answer,
			Category:  record.Category,
			Client:    record.Client,
			CreatedAt: record.CreatedAt,
		}
	}
	return entries, nil
}

// ListCategories returns all categories present in the base, sorted.
func (b *Base) ListCategories(ctx context.Context) ([]string, error) {
	return b.entries.ListCategories(ctx)
}

// Count returns the number of stored entries.
func (b *Base) Count(ctx context.Context) (int, error) {
	return b.entries.Count(ctx)
}

// Clear removes every entry and recreates an empty collection. All future
// retrievals come back empty until new entries are ingested.
func (b *Base) Clear(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := b.vectors.DropCollection(ctx, b.collection); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	if err := b.vectors.EnsureCollection(ctx, b.collection, b.vectorSize); err != nil {
		return fmt.Errorf("failed to recreate collection: %w", err)
	}
	if err := b.entries.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	logger.InfoContext(ctx, "knowledge base cleared")
	return nil
}

// combinedText builds the document that gets embedded for an entry.
func combinedText(entry QAEntry) string {
	return fmt.Sprintf("Question: %s\nAnswer: %s", entry.Question, entry.Answer)
}

// distanceFromScore converts a cosine similarity into a distance; the
// retriever converts it back into a [0,1] similarity. Scores above 1
// (rounding artifacts) clamp to distance 0.
func distanceFromScore(score float32) float64 {
	d := 1 - float64(score)
	if d < 0 {
		return 0
	}
	return d
}
