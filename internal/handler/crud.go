// Package handler implements the HTTP surface: creator discovery, search,
// reviews, reactions and suggestion intake.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

// Helper functions

func sendJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, statusCode int, error string, message string, details map[string]interface{}) {
	sendJSON(w, statusCode, models.ErrorResponse{
		Error:   error,
		Message: message,
		Details: details,
	})
}

// sendStoreError translates the error taxonomy into HTTP statuses. Errors
// outside the taxonomy are logged and reported as internal.
func sendStoreError(w http.ResponseWriter, logger *slog.Logger, err error, resource string) {
	switch {
	case db.IsNotFound(err):
		sendError(w, http.StatusNotFound, "not found", resource+" not found", nil)
	case db.IsInvalidArgument(err):
		sendError(w, http.StatusBadRequest, "validation failed", err.Error(), nil)
	case db.IsPermissionDenied(err):
		sendError(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	case db.IsDuplicateKey(err):
		sendError(w, http.StatusConflict, "conflict", resource+" already exists", nil)
	case db.IsImportFailed(err):
		sendError(w, http.StatusBadGateway, "import failed", err.Error(), nil)
	default:
		logger.Error("request failed", "resource", resource, "error", err)
		sendError(w, http.StatusInternalServerError, "internal server error", "", nil)
	}
}

func parseBool(r *http.Request, key string) (*bool, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil, err
	}

	return &b, nil
}
