package cluster_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgha/statusapi/internal/cluster"
)

func patroniServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cluster", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTopology_HealthyCluster(t *testing.T) {
	srv := patroniServer(t, http.StatusOK, `{
		"scope": "pgha",
		"members": [
			{"name": "node1", "role": "leader", "state": "running", "host": "10.0.0.1", "port": 5432, "timeline": 3},
			{"name": "node2", "role": "replica", "state": "streaming", "host": "10.0.0.2", "port": 5432, "timeline": 3, "lag": 1024}
		]
	}`)
	c := cluster.NewClient(srv.URL)

	snap := c.Topology(context.Background())

	assert.Equal(t, cluster.StatusOK, snap.Status)
	assert.Equal(t, "pgha", snap.Scope)
	require.Len(t, snap.Members, 2)

	replica := snap.Members[1]
	require.NotNil(t, replica.LagBytes)
	assert.Equal(t, int64(1024), *replica.LagBytes)
}

func TestTopology_UnknownLagOmitted(t *testing.T) {
	srv := patroniServer(t, http.StatusOK, `{
		"scope": "pgha",
		"members": [
			{"name": "node1", "role": "leader", "state": "running"},
			{"name": "node2", "role": "replica", "state": "starting", "lag": "unknown"}
		]
	}`)
	c := cluster.NewClient(srv.URL)

	snap := c.Topology(context.Background())

	require.Len(t, snap.Members, 2)
	assert.Nil(t, snap.Members[1].LagBytes)
}

func TestTopology_NoLeaderIsDegraded(t *testing.T) {
	srv := patroniServer(t, http.StatusOK, `{
		"scope": "pgha",
		"members": [
			{"name": "node1", "role": "replica", "state": "running"},
			{"name": "node2", "role": "replica", "state": "streaming"}
		]
	}`)
	c := cluster.NewClient(srv.URL)

	snap := c.Topology(context.Background())

	assert.Equal(t, cluster.StatusDegraded, snap.Status)
	require.NotNil(t, snap.StatusMessage)
	assert.Contains(t, *snap.StatusMessage, "found 0")
}

func TestTopology_UpstreamErrorStatus(t *testing.T) {
	srv := patroniServer(t, http.StatusBadGateway, "")
	c := cluster.NewClient(srv.URL)

	snap := c.Topology(context.Background())

	assert.Equal(t, cluster.StatusUnavailable, snap.Status)
	assert.NotNil(t, snap.Members, "members must be an empty array, not null")
	assert.Empty(t, snap.Members)
}

func TestTopology_MalformedBody(t *testing.T) {
	srv := patroniServer(t, http.StatusOK, "not json")
	c := cluster.NewClient(srv.URL)

	snap := c.Topology(context.Background())

	assert.Equal(t, cluster.StatusUnavailable, snap.Status)
}

func TestTopology_NoEndpointConfigured(t *testing.T) {
	c := cluster.NewClient("")

	snap := c.Topology(context.Background())

	assert.Equal(t, cluster.StatusUnavailable, snap.Status)
	require.NotNil(t, snap.StatusMessage)
	assert.Contains(t, *snap.StatusMessage, "no Patroni endpoint configured")
}
