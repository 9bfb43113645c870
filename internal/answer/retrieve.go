package answer

import (
	"context"
	"fmt"
	"log/slog"

	"proposalqa/internal/contextutil"
)

const defaultTopK = 5

// Retriever queries the vector index for candidate historical entries and
// scores each one with both the vector similarity and the lexical score.
type Retriever struct {
	index  VectorIndex
	logger *slog.Logger
}

// NewRetriever creates a Retriever on top of a vector index.
func NewRetriever(index VectorIndex) *Retriever {
	return &Retriever{
		index:  index,
		logger: slog.Default(),
	}
}

// Retrieve returns at most topK scored candidates for the question,
// optionally restricted to a category. An empty index or a filter that
// matches nothing yields an empty list, not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int, category string) ([]Candidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if topK <= 0 {
		topK = defaultTopK
	}

	hits, err := r.index.Query(ctx, question, topK, category)
	if err != nil {
		logger.ErrorContext(ctx, "vector index query failed", "category", category, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	candidates := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		if len(candidates) == topK {
			break
		}
		candidates = append(candidates, Candidate{
			Entry:        hit.Entry,
			Distance:     hit.Distance,
			ScoreVector:  similarityFromDistance(hit.Distance),
			ScoreLexical: LexicalScore(question, hit.Entry.Question),
		})
	}

	logger.DebugContext(ctx, "candidates retrieved",
		"question_length", len(question),
		"top_k", topK,
		"category", category,
		"count", len(candidates),
	)
	return candidates, nil
}

// similarityFromDistance converts a raw index distance into a similarity
// in [0,1]. Distance 0 maps to 1.0 and the similarity strictly decreases
// with growing distance until it bottoms out at 0.
func similarityFromDistance(distance float64) float64 {
	score := 1 - distance
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
