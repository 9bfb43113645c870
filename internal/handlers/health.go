package handlers

import (
	"context"
	"net/http"
	"time"

	"proposalqa/internal/contextutil"
	"proposalqa/internal/vectorstore"
)

// HealthHandler reports the service's dependency health.
type HealthHandler struct {
	store      vectorstore.Store
	collection string
	timeout    time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store vectorstore.Store, collection string) *HealthHandler {
	return &HealthHandler{
		store:      store,
		collection: collection,
		timeout:    5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Issues    []string          `json:"issues,omitempty"`
}

// ServeHTTP returns 200 when all checks pass and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	logger := contextutil.LoggerFromContext(ctx)

	checks := make(map[string]string)
	var issues []string

	exists, err := h.store.CollectionExists(ctx, h.collection)
	switch {
	case err != nil:
		checks["vector_store"] = "unreachable"
		issues = append(issues, "vector store unreachable: "+err.Error())
	case !exists:
		checks["vector_store"] = "missing_collection"
		issues = append(issues, "collection "+h.collection+" does not exist")
	default:
		checks["vector_store"] = "ok"
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}

	status := http.StatusOK
	if len(issues) > 0 {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
		logger.WarnContext(ctx, "health check failed", "issues", issues)
	}

	writeJSON(w, status, resp)
}
