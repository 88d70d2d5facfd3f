package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Sanjay-Kirti/YouMDB/internal/service"
)

// ImportHandler triggers a synchronous channel import for operators.
type ImportHandler struct {
	importer *service.ImporterService
	logger   *slog.Logger
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importer *service.ImporterService, logger *slog.Logger) *ImportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportHandler{
		importer: importer,
		logger:   logger,
	}
}

// ImportRequest represents the request to import a channel by URL.
type ImportRequest struct {
	URL string `json:"url"`
}

// ServeHTTP handles POST requests importing a channel from its URL.
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil)
		return
	}

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body", err.Error(), nil)
		return
	}
	if req.URL == "" {
		sendError(w, http.StatusBadRequest, "validation failed", "url is required", nil)
		return
	}

	creator, err := h.importer.ImportFromURL(r.Context(), req.URL)
	if err != nil {
		sendStoreError(w, h.logger, err, "channel import")
		return
	}

	sendJSON(w, http.StatusCreated, creator)
}
