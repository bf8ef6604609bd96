package handler

import (
	"context"
	"net/http"

	"github.com/pgha/statusapi/internal/api/response"
	"github.com/pgha/statusapi/internal/cluster"
)

// TopologyProvider reports HA cluster membership.
type TopologyProvider interface {
	Topology(ctx context.Context) cluster.Snapshot
}

// ClusterHandler handles GET /cluster.
type ClusterHandler struct {
	provider TopologyProvider
}

// NewClusterHandler creates a new ClusterHandler.
func NewClusterHandler(provider TopologyProvider) *ClusterHandler {
	return &ClusterHandler{provider: provider}
}

// Cluster returns the cluster topology snapshot. Always 200; an
// unreachable orchestrator is reported through the status field.
func (h *ClusterHandler) Cluster(w http.ResponseWriter, r *http.Request) {
	snap := h.provider.Topology(r.Context())
	response.JSON(w, http.StatusOK, snap)
}
