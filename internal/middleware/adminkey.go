package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
)

const headerAPIKey = "X-API-Key"

// AdminKey guards operator-only endpoints behind a static API key.
type AdminKey struct {
	keys   []string
	logger *slog.Logger
}

// NewAdminKey creates admin key middleware. With no keys configured every
// request is rejected.
func NewAdminKey(keys []string, logger *slog.Logger) *AdminKey {
	if logger == nil {
		logger = slog.Default()
	}
	valid := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			valid = append(valid, key)
		}
	}
	return &AdminKey{keys: valid, logger: logger}
}

// Middleware returns an HTTP middleware that validates the X-API-Key
// header with constant-time comparison.
func (a *AdminKey) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get(headerAPIKey)
		if !a.isValid(provided) {
			a.logger.Warn("rejected admin request",
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *AdminKey) isValid(provided string) bool {
	if provided == "" {
		return false
	}
	for _, key := range a.keys {
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) == 1 {
			return true
		}
	}
	return false
}
