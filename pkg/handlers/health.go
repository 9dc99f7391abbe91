package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// HealthChecker probes one dependency of a module.
type HealthChecker func(ctx context.Context) error

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status string            `json:"status"`
	Module string            `json:"module,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler creates a health check handler for a module. Each named
// checker is probed per request; any failure turns the response into a 503.
func HealthHandler(moduleName string, checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status: "healthy",
			Module: moduleName,
		}
		statusCode := http.StatusOK

		if len(checks) > 0 {
			response.Checks = make(map[string]string, len(checks))
			for name, check := range checks {
				if err := check(r.Context()); err != nil {
					response.Checks[name] = err.Error()
					response.Status = "unhealthy"
					statusCode = http.StatusServiceUnavailable
					continue
				}
				response.Checks[name] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			slog.Error("Failed to encode health response", "error", err, "module", moduleName)
		}
	}
}
