package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/search"
)

// SearchHandler serves the creator discovery endpoint.
type SearchHandler struct {
	engine *search.Engine
	logger *slog.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine *search.Engine, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{
		engine: engine,
		logger: logger,
	}
}

// ServeHTTP handles GET requests with the supported filter parameters
// (name, genre, country, state, min_subscribers, max_subscribers) and the
// facets listing feeding the filter dropdowns.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil)
		return
	}

	switch strings.TrimPrefix(r.URL.Path, "/api/v1/search") {
	case "", "/":
		h.handleSearch(w, r)
	case "/facets":
		h.handleFacets(w, r)
	default:
		sendError(w, http.StatusNotFound, "not found", "", nil)
	}
}

func (h *SearchHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseParams(r.URL.Query())
	if err != nil {
		sendStoreError(w, h.logger, err, "search")
		return
	}

	results, err := h.engine.Search(r.Context(), params)
	if err != nil {
		sendStoreError(w, h.logger, err, "search")
		return
	}
	if results == nil {
		results = []*models.Creator{}
	}
	sendJSON(w, http.StatusOK, results)
}

func (h *SearchHandler) handleFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.engine.ListFacets(r.Context(), r.URL.Query().Get("country"))
	if err != nil {
		sendStoreError(w, h.logger, err, "facets")
		return
	}
	sendJSON(w, http.StatusOK, facets)
}
