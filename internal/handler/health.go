package handler

import (
	"net/http"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() bool

// HealthHandler reports process liveness and dependency health.
type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler creates a health handler over named dependency checks.
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	if checks == nil {
		checks = map[string]HealthChecker{}
	}
	return &HealthHandler{checks: checks}
}

// ServeHTTP reports 200 when every dependency is healthy, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil)
		return
	}

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if check() {
			deps[name] = "up"
		} else {
			deps[name] = "down"
			status = http.StatusServiceUnavailable
		}
	}

	body := map[string]interface{}{
		"status": "ok",
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}

	sendJSON(w, status, body)
}
