package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks proposalqa/internal/vectorstore Store

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents one hit from a similarity search. Score is the
// index's similarity (higher is closer).
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// Store defines the vector storage operations the knowledge base needs.
type Store interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search. A non-empty category is applied
	// as an exact-match payload filter.
	Search(ctx context.Context, collection string, query []float32, k int, category string) ([]SearchResult, error)

	// EnsureCollection creates the collection if missing and validates the
	// vector size if it exists.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// DropCollection removes the collection and everything in it.
	DropCollection(ctx context.Context, collection string) error

	// CollectionExists reports whether the collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// Count returns the number of points in the collection.
	Count(ctx context.Context, collection string) (int, error)
}
