package handlers

import (
	"net/http"
	"strconv"

	"proposalqa/internal/answer"
	"proposalqa/internal/contextutil"
)

// SearchHandler returns ranked retrieval candidates without generating an
// answer. Useful for inspecting what the knowledge base would ground on.
type SearchHandler struct {
	retriever *answer.Retriever
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(retriever *answer.Retriever) *SearchHandler {
	return &SearchHandler{retriever: retriever}
}

// SearchMatch is one ranked candidate in the search response.
type SearchMatch struct {
	Question     string  `json:"question"`
	Answer       string  `json:"answer"`
	Category     string  `json:"category"`
	Client       string  `json:"client,omitempty"`
	ScoreVector  float64 `json:"score_vector"`
	ScoreLexical float64 `json:"score_lexical"`
}

// SearchResponse represents the search response payload.
type SearchResponse struct {
	Query   string        `json:"query"`
	Matches []SearchMatch `json:"matches"`
}

func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	k := 0
	if kParam := r.URL.Query().Get("k"); kParam != "" {
		parsed, err := strconv.Atoi(kParam)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Query parameter 'k' must be a positive integer")
			return
		}
		if parsed > 20 {
			parsed = 20
		}
		k = parsed
	}
	category := r.URL.Query().Get("category")

	candidates, err := h.retriever.Retrieve(ctx, query, k, category)
	if err != nil {
		logger.ErrorContext(ctx, "search failed", "error", err)
		status, message := answerErrorStatus(err)
		writeError(w, status, message)
		return
	}

	ranked := answer.Rank(candidates)
	matches := make([]SearchMatch, len(ranked))
	for i, c := range ranked {
		matches[i] = SearchMatch{
			Question:     c.Entry.Question,
			Answer:       c.Entry.Answer,
			Category:     c.Entry.Category,
			Client:       c.Entry.Client,
			ScoreVector:  c.ScoreVector,
			ScoreLexical: c.ScoreLexical,
		}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Query: query, Matches: matches})
}
