package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/pgha/statusapi/internal/api/response"
)

// Pinger probes database connectivity for the readiness check.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles the service descriptor, liveness, and readiness
// endpoints.
type HealthHandler struct {
	name    string
	version string
	pinger  Pinger
}

// NewHealthHandler creates a new HealthHandler. A nil pinger means the
// database pool was never constructed; readiness then reports
// not_initialized.
func NewHealthHandler(name, version string, pinger Pinger) *HealthHandler {
	return &HealthHandler{
		name:    name,
		version: version,
		pinger:  pinger,
	}
}

type healthBody struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

type readyBody struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Root handles GET / with a static service descriptor.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"message": h.name,
		"health":  "/health",
		"ready":   "/ready",
		"metrics": "/metrics",
		"backups": "/backups",
		"cluster": "/cluster",
	})
}

// Health handles GET /health, a pure liveness signal independent of any
// dependency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, healthBody{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// Ready handles GET /ready. 200 only when a database round trip succeeds,
// 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	dbStatus := "not_initialized"

	if h.pinger != nil {
		if err := h.pinger.HealthCheck(r.Context()); err != nil {
			dbStatus = "error: " + err.Error()
		} else {
			dbStatus = "connected"
		}
	}

	body := readyBody{
		Status:    "ready",
		Database:  dbStatus,
		Timestamp: time.Now().UTC(),
	}

	if dbStatus != "connected" {
		body.Status = "not_ready"
		response.JSON(w, http.StatusServiceUnavailable, body)
		return
	}

	response.JSON(w, http.StatusOK, body)
}
