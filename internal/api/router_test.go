package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgha/statusapi/internal/api"
	"github.com/pgha/statusapi/internal/backup"
	"github.com/pgha/statusapi/internal/cluster"
)

// okRunner reports a healthy but empty backup repository.
type okRunner struct{}

func (okRunner) Info(context.Context, string) ([]byte, error) {
	return []byte(`[{"status":{"code":0,"message":"ok"}}]`), nil
}

// staticTopology returns a fixed cluster snapshot.
type staticTopology struct {
	snap cluster.Snapshot
}

func (s staticTopology) Topology(context.Context) cluster.Snapshot {
	return s.snap
}

func minimalDeps() api.RouterDeps {
	return api.RouterDeps{
		AppName: "status-api",
		Version: "1.0.0",
		Backups: backup.NewAggregator(okRunner{}),
		Stanza:  "main",
	}
}

func TestRouter_StatusRoutesAlwaysRegistered(t *testing.T) {
	// No pool, no repo, no collector: the service still reports status.
	r := api.NewRouter(minimalDeps())

	for _, path := range []string{"/", "/health", "/backups"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}

	// Readiness is registered but degraded without a pool.
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_DatabaseRoutesRequirePool(t *testing.T) {
	r := api.NewRouter(minimalDeps())

	for _, path := range []string{"/metrics", "/items"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, "GET %s without a pool", path)
	}
}

func TestRouter_ClusterRoute(t *testing.T) {
	deps := minimalDeps()
	deps.Topology = staticTopology{snap: cluster.Snapshot{
		Scope:   "pgha",
		Status:  cluster.StatusOK,
		Members: []cluster.Member{{Name: "node1", Role: "leader", State: "running"}},
	}}
	r := api.NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/cluster", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "pgha", body["scope"])
}

func TestRouter_RequestIDHeader(t *testing.T) {
	r := api.NewRouter(minimalDeps())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_PropagatesClientRequestID(t *testing.T) {
	r := api.NewRouter(minimalDeps())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-chosen-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-chosen-id", w.Header().Get("X-Request-ID"))
}
