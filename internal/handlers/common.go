package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"proposalqa/internal/answer"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// answerErrorStatus maps engine errors to HTTP status codes: validation
// failures are the caller's fault, retrieval failures mean the vector
// index is unreachable, generation failures mean the model upstream broke.
func answerErrorStatus(err error) (int, string) {
	var validationErr *answer.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}
	if errors.Is(err, answer.ErrRetrieval) {
		return http.StatusServiceUnavailable, "Knowledge base unavailable"
	}
	if errors.Is(err, answer.ErrGeneration) {
		return http.StatusBadGateway, "Answer generation failed"
	}
	return http.StatusInternalServerError, "Failed to answer question"
}
