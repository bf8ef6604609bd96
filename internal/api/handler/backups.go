package handler

import (
	"net/http"

	"github.com/pgha/statusapi/internal/api/response"
	"github.com/pgha/statusapi/internal/backup"
)

// BackupsHandler handles GET /backups.
type BackupsHandler struct {
	aggregator *backup.Aggregator
	stanza     string
}

// NewBackupsHandler creates a new BackupsHandler for the configured stanza.
func NewBackupsHandler(aggregator *backup.Aggregator, stanza string) *BackupsHandler {
	return &BackupsHandler{
		aggregator: aggregator,
		stanza:     stanza,
	}
}

// Backups returns the backup status snapshot. Always 200: tool failures
// are reported through the snapshot's status field, since the endpoint's
// purpose is to report on another system's health even when that system
// is absent or broken.
func (h *BackupsHandler) Backups(w http.ResponseWriter, r *http.Request) {
	snap := h.aggregator.Status(r.Context(), h.stanza)
	response.JSON(w, http.StatusOK, snap)
}
