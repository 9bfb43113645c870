package handlers

import (
	"encoding/json"
	"net/http"

	"proposalqa/internal/answer"
	"proposalqa/internal/contextutil"
)

// SuggestHandler reviews a manually written answer against the knowledge
// base and returns improvement suggestions.
type SuggestHandler struct {
	engine answer.Engine
}

// NewSuggestHandler creates a new SuggestHandler.
func NewSuggestHandler(engine answer.Engine) *SuggestHandler {
	return &SuggestHandler{engine: engine}
}

// SuggestRequest represents an improvement review request.
type SuggestRequest struct {
	Question      string `json:"question"`
	CurrentAnswer string `json:"current_answer"`
}

// SuggestResponse represents the improvement review payload.
type SuggestResponse struct {
	Suggestions string `json:"suggestions"`
}

func (h *SuggestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	suggestions, err := h.engine.SuggestImprovements(ctx, req.Question, req.CurrentAnswer)
	if err != nil {
		logger.ErrorContext(ctx, "failed to review answer", "error", err)
		status, message := answerErrorStatus(err)
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: suggestions})
}
