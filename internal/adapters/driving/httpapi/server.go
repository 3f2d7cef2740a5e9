// Package httpapi exposes the search index and relationship graph over
// HTTP for the content site to consume.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driving"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// indexCacheControl is the cache policy for the search index endpoint.
// The index is cheap to rebuild but changes rarely, so clients may serve
// a stale copy for a day while revalidating hourly.
const indexCacheControl = "public, max-age=3600, stale-while-revalidate=86400"

// Server serves the search and relationship API.
type Server struct {
	relations driving.RelationService
	search    driving.SearchService
	router    chi.Router
}

// NewServer creates a server over the core services.
func NewServer(relations driving.RelationService, search driving.SearchService) *Server {
	s := &Server{
		relations: relations,
		search:    search,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(rateLimit(requestsPerSecond, burstSize))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search-index", s.handleSearchIndex)
		r.Get("/search", s.handleSearch)
		r.Get("/diagnostics", s.handleDiagnostics)

		r.Route("/articles/{slug}", func(r chi.Router) {
			r.Get("/supplements", s.handleArticleSupplements)
			r.Get("/conditions", s.handleArticleConditions)
			r.Get("/clinics", s.handleArticleClinics)
		})
		r.Route("/supplements/{slug}", func(r chi.Router) {
			r.Get("/articles", s.handleSupplementArticles)
			r.Get("/conditions", s.handleSupplementConditions)
		})
		r.Route("/conditions/{slug}", func(r chi.Router) {
			r.Get("/articles", s.handleConditionArticles)
			r.Get("/supplements", s.handleConditionSupplements)
			r.Get("/clinics", s.handleConditionClinics)
		})
		r.Route("/clinics/{slug}", func(r chi.Router) {
			r.Get("/articles", s.handleClinicArticles)
			r.Get("/conditions", s.handleClinicConditions)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearchIndex serves the full search snapshot with the public cache
// policy. The snapshot is recomputed on every uncached request.
func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.search.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", indexCacheControl)
	writeJSON(w, http.StatusOK, snapshot)
}

// handleSearch answers one-shot queries server-side. The site normally
// queries client-side from the index; this endpoint backs the CLI and
// clients without the snapshot.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	opts := domain.QueryOptions{}

	if t := r.URL.Query().Get("type"); t != "" {
		itemType := domain.SearchItemType(t)
		if !itemType.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "unknown type: " + t,
			})
			return
		}
		opts.Type = itemType
	}

	results, err := s.search.Query(r.Context(), query, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diags, err := s.relations.Diagnostics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if diags == nil {
		diags = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"diagnostics": diags})
}

// writeJSON encodes a JSON response.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Encoding response: %v", err)
	}
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrIndexUnavailable),
		errors.Is(err, domain.ErrContentUnavailable):
		status = http.StatusServiceUnavailable
	}

	logger.Error("Request failed: %v", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
