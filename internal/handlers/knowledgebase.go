package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"proposalqa/internal/contextutil"
	"proposalqa/internal/ingest"
	"proposalqa/internal/knowledge"
)

// maxDocumentBytes caps one uploaded document.
const maxDocumentBytes = 4 << 20

// KnowledgeBase is the slice of the knowledge base these handlers need.
type KnowledgeBase interface {
	Upsert(ctx context.Context, entries []knowledge.QAEntry) error
	ListByCategory(ctx context.Context, category string, limit int) ([]knowledge.QAEntry, error)
	ListCategories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// DocumentsHandler ingests uploaded documents into the knowledge base.
type DocumentsHandler struct {
	processor *ingest.Processor
	base      KnowledgeBase
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(processor *ingest.Processor, base KnowledgeBase) *DocumentsHandler {
	return &DocumentsHandler{processor: processor, base: base}
}

// DocumentRequest represents an uploaded document.
type DocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// DocumentResponse summarizes an ingestion.
type DocumentResponse struct {
	Name         string `json:"name"`
	EntriesAdded int    `json:"entries_added"`
}

func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Document name is required")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Document content is required")
		return
	}

	entries := h.processor.Extract(req.Name, []byte(req.Content))
	if len(entries) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "No Q&A pairs found in document")
		return
	}

	if err := h.base.Upsert(ctx, entries); err != nil {
		logger.ErrorContext(ctx, "failed to ingest document", "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store extracted entries")
		return
	}

	logger.InfoContext(ctx, "document ingested", "name", req.Name, "entries", len(entries))
	writeJSON(w, http.StatusCreated, DocumentResponse{
		Name:         req.Name,
		EntriesAdded: len(entries),
	})
}

// CategoriesHandler lists the categories present in the knowledge base.
type CategoriesHandler struct {
	base KnowledgeBase
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(base KnowledgeBase) *CategoriesHandler {
	return &CategoriesHandler{base: base}
}

// CategoriesResponse represents the category list payload.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	categories, err := h.base.ListCategories(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}

	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

// defaultQAPairsLimit is how many pairs a category listing returns unless
// the caller asks for more.
const defaultQAPairsLimit = 10

// QAPairsHandler lists stored Q&A pairs in one category.
type QAPairsHandler struct {
	base KnowledgeBase
}

// NewQAPairsHandler creates a new QAPairsHandler.
func NewQAPairsHandler(base KnowledgeBase) *QAPairsHandler {
	return &QAPairsHandler{base: base}
}

// QAPair is one stored pair in the listing response.
type QAPair struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	Client    string `json:"client,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// QAPairsResponse represents the category listing payload.
type QAPairsResponse struct {
	QAPairs []QAPair `json:"qa_pairs"`
	Count   int      `json:"count"`
}

func (h *QAPairsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'category' is required")
		return
	}

	limit := defaultQAPairsLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Query parameter 'limit' must be a positive integer")
			return
		}
		if parsed > 100 {
			parsed = 100
		}
		limit = parsed
	}

	entries, err := h.base.ListByCategory(ctx, category, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list pairs", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list Q&A pairs")
		return
	}

	pairs := make([]QAPair, len(entries))
	for i, entry := range entries {
		pairs[i] = QAPair{
			ID:       entry.ID,
			Question: entry.Question,
			Answer:   entry.Answer,
			Category: entry.Category,
			Client:   entry.Client,
		}
		if !entry.CreatedAt.IsZero() {
			pairs[i].CreatedAt = entry.CreatedAt.UTC().Format(time.RFC3339)
		}
	}

	writeJSON(w, http.StatusOK, QAPairsResponse{QAPairs: pairs, Count: len(pairs)})
}

// StatsHandler reports knowledge base counters.
type StatsHandler struct {
	base KnowledgeBase
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(base KnowledgeBase) *StatsHandler {
	return &StatsHandler{base: base}
}

// StatsResponse represents the stats payload.
type StatsResponse struct {
	Entries    int      `json:"entries"`
	Categories []string `json:"categories"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	count, err := h.base.Count(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count entries", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read stats")
		return
	}
	categories, err := h.base.ListCategories(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read stats")
		return
	}
	if categories == nil {
		categories = []string{}
	}

	writeJSON(w, http.StatusOK, StatsResponse{Entries: count, Categories: categories})
}

// ClearHandler wipes the knowledge base.
type ClearHandler struct {
	base KnowledgeBase
}

// NewClearHandler creates a new ClearHandler.
func NewClearHandler(base KnowledgeBase) *ClearHandler {
	return &ClearHandler{base: base}
}

func (h *ClearHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := h.base.Clear(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to clear knowledge base", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to clear knowledge base")
		return
	}

	logger.InfoContext(ctx, "knowledge base cleared via API")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
