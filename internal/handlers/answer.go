package handlers

import (
	"encoding/json"
	"net/http"

	"proposalqa/internal/answer"
	"proposalqa/internal/contextutil"
)

// maxBatchQuestions bounds one batch request; larger uploads should be
// split by the caller.
const maxBatchQuestions = 50

// AnswerHandler handles single-question answering requests.
type AnswerHandler struct {
	engine answer.Engine
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(engine answer.Engine) *AnswerHandler {
	return &AnswerHandler{engine: engine}
}

// AnswerRequest represents the HTTP request payload for a single question.
type AnswerRequest struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
	Category string `json:"category,omitempty"`
	TopK     int    `json:"top_k,omitempty"`
}

// AnswerResponse is an answer result plus the derived confidence bands.
type AnswerResponse struct {
	answer.Result
	ConfidenceLevel string `json:"confidence_level"`
	FuzzyLevel      string `json:"fuzzy_level"`
}

func (h *AnswerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TopK < 0 {
		req.TopK = 0
	}
	if req.TopK > 20 {
		req.TopK = 20
	}

	result, err := h.engine.AnswerOne(ctx, answer.Request{
		Question: req.Question,
		Context:  req.Context,
		Category: req.Category,
		TopK:     req.TopK,
	})
	if err != nil {
		logger.ErrorContext(ctx, "answer failed", "error", err)
		status, message := answerErrorStatus(err)
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, AnswerResponse{
		Result:          result,
		ConfidenceLevel: answer.ConfidenceBand(result.ConfidenceScore),
		FuzzyLevel:      answer.FuzzyBand(result.FuzzyScore),
	})
}

// BatchAnswerHandler handles batch answering requests.
type BatchAnswerHandler struct {
	engine answer.Engine
}

// NewBatchAnswerHandler creates a new BatchAnswerHandler.
func NewBatchAnswerHandler(engine answer.Engine) *BatchAnswerHandler {
	return &BatchAnswerHandler{engine: engine}
}

// BatchAnswerRequest represents the HTTP request payload for a batch.
type BatchAnswerRequest struct {
	Questions []string `json:"questions"`
}

// BatchAnswerResponse wraps the ordered per-question outcomes.
type BatchAnswerResponse struct {
	Results answer.BatchResult `json:"results"`
	Total   int                `json:"total"`
	Failed  int                `json:"failed"`
}

func (h *BatchAnswerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req BatchAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "Questions are required")
		return
	}
	if len(req.Questions) > maxBatchQuestions {
		writeError(w, http.StatusBadRequest, "Too many questions in one batch")
		return
	}

	results := h.engine.AnswerMany(ctx, req.Questions)

	failed := 0
	for _, item := range results {
		if item.Err != "" {
			failed++
		}
	}

	writeJSON(w, http.StatusOK, BatchAnswerResponse{
		Results: results,
		Total:   len(results),
		Failed:  failed,
	})
}
