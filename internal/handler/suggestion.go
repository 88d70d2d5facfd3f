package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sanjay-Kirti/YouMDB/internal/middleware"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/service"
)

// SuggestionHandler accepts channel suggestions and lists them for
// operators.
type SuggestionHandler struct {
	suggestions *service.SuggestionService
	logger      *slog.Logger
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestions *service.SuggestionService, logger *slog.Logger) *SuggestionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestionHandler{
		suggestions: suggestions,
		logger:      logger,
	}
}

// ServeHTTP routes suggestion requests.
func (h *SuggestionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/suggestions")
	if path != "" && path != "/" {
		sendError(w, http.StatusNotFound, "not found", "", nil)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		sendError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil)
	}
}

func (h *SuggestionHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var input service.SuggestionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body", err.Error(), nil)
		return
	}

	session := middleware.SessionFromContext(r.Context())
	suggestion, err := h.suggestions.Submit(r.Context(), session, input)
	if err != nil {
		sendStoreError(w, h.logger, err, "suggestion")
		return
	}

	sendJSON(w, http.StatusCreated, suggestion)
}

func (h *SuggestionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	unprocessed, err := parseBool(r, "unprocessed")
	if err != nil {
		sendError(w, http.StatusBadRequest, "validation failed", "invalid boolean value for unprocessed", nil)
		return
	}

	suggestions, err := h.suggestions.List(r.Context(), unprocessed != nil && *unprocessed)
	if err != nil {
		sendStoreError(w, h.logger, err, "suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []*models.Suggestion{}
	}
	sendJSON(w, http.StatusOK, suggestions)
}
