package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"instructchat/internal/contextutil"
	"instructchat/internal/device"
)

// SessionStatus is the part of the model session the health check inspects.
type SessionStatus interface {
	Available() bool
	Err() error
	Device() device.Info
	ModelID() string
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	session SessionStatus
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(session SessionStatus) *HealthHandler {
	return &HealthHandler{session: session}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Model served by the session
	Model string `json:"model"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
// Returns 200 OK if the model session is ready, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]string)
	var issues []string

	if h.session.Available() {
		checks["model_session"] = "ok"
	} else {
		checks["model_session"] = "error"
		issues = append(issues, "model_session_unavailable")
		if err := h.session.Err(); err != nil {
			logger.WarnContext(ctx, "model session unavailable", "error", err)
		}
	}

	// Device is informational; CPU is a valid placement.
	checks["device"] = h.session.Device().String()

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Model:     h.session.ModelID(),
		Checks:    checks,
		Issues:    issues,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
