package handler

import (
	"log/slog"
	"net/http"

	"github.com/pgha/statusapi/internal/api/middleware"
	"github.com/pgha/statusapi/internal/api/response"
	"github.com/pgha/statusapi/internal/metrics"
)

// MetricsHandler handles GET /metrics.
type MetricsHandler struct {
	collector *metrics.Collector
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

// Metrics returns a point-in-time database metrics snapshot. A mandatory
// query failure yields a 500 with no partial snapshot.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	snap, err := h.collector.Collect(r.Context())
	if err != nil {
		slog.Error("failed to collect metrics", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "database_error", "Failed to collect database metrics")
		return
	}

	response.JSON(w, http.StatusOK, snap)
}
