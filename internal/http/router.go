package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"proposalqa/internal/answer"
	"proposalqa/internal/handlers"
	"proposalqa/internal/ingest"
	"proposalqa/internal/knowledge"
	"proposalqa/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine     answer.Engine
	Retriever  *answer.Retriever
	Base       *knowledge.Base
	Processor  *ingest.Processor
	Store      vectorstore.Store
	Collection string
}

// NewRouter creates the HTTP router.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	answerHandler := handlers.NewAnswerHandler(deps.Engine)
	batchHandler := handlers.NewBatchAnswerHandler(deps.Engine)
	suggestHandler := handlers.NewSuggestHandler(deps.Engine)
	searchHandler := handlers.NewSearchHandler(deps.Retriever)
	qaPairsHandler := handlers.NewQAPairsHandler(deps.Base)
	categoriesHandler := handlers.NewCategoriesHandler(deps.Base)
	statsHandler := handlers.NewStatsHandler(deps.Base)
	documentsHandler := handlers.NewDocumentsHandler(deps.Processor, deps.Base)
	clearHandler := handlers.NewClearHandler(deps.Base)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/answer", answerHandler)
		r.Method(http.MethodPost, "/answers", batchHandler)
		r.Method(http.MethodPost, "/suggest-improvements", suggestHandler)
		r.Method(http.MethodGet, "/search", searchHandler)
		r.Method(http.MethodGet, "/qa-pairs", qaPairsHandler)
		r.Method(http.MethodGet, "/categories", categoriesHandler)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodPost, "/documents", documentsHandler)
		r.Method(http.MethodDelete, "/knowledge-base", clearHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
