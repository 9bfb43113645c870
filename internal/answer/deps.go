package answer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks proposalqa/internal/answer VectorIndex,Generator

import (
	"context"

	"proposalqa/internal/knowledge"
)

// VectorIndex is the nearest-neighbour lookup the retriever depends on.
// It is defined from the consumer's perspective so it can be satisfied by
// the knowledge base or by a mock in tests. Query returns at most k hits;
// an empty category means no filter. The retriever never mutates the index.
type VectorIndex interface {
	Query(ctx context.Context, text string, k int, category string) ([]knowledge.Hit, error)
}

// Generator produces raw answer text from a grounding prompt. The output
// is treated as opaque text; parsing it is the splitter's job.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
