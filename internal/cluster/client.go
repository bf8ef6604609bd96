// Package cluster reports HA cluster topology as seen by the Patroni
// REST API.
package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Topology status values. Like the backup snapshot, transport failures
// are folded into the status field rather than surfaced as HTTP errors.
const (
	StatusOK          = "ok"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"
)

const requestTimeout = 5 * time.Second

// Member is one node in the Patroni cluster.
type Member struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	State    string `json:"state"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Timeline int    `json:"timeline,omitempty"`
	LagBytes *int64 `json:"lag_bytes,omitempty"`
}

// Snapshot is a derived view of cluster topology, recomputed per request.
type Snapshot struct {
	Scope         string    `json:"scope,omitempty"`
	Status        string    `json:"status"`
	StatusMessage *string   `json:"status_message,omitempty"`
	Members       []Member  `json:"members"`
	Timestamp     time.Time `json:"timestamp"`
}

// patroniCluster mirrors the JSON from Patroni's GET /cluster endpoint.
type patroniCluster struct {
	Scope   string `json:"scope"`
	Members []struct {
		Name     string          `json:"name"`
		Role     string          `json:"role"`
		State    string          `json:"state"`
		Host     string          `json:"host"`
		Port     int             `json:"port"`
		Timeline int             `json:"timeline"`
		Lag      json.RawMessage `json:"lag"` // int bytes, or "unknown"
	} `json:"members"`
}

// Client queries a Patroni REST endpoint for cluster state.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given Patroni base URL. An empty URL
// yields a client whose snapshots always report unavailable.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Topology fetches and normalizes cluster membership. It never fails:
// an unreachable or misconfigured Patroni endpoint produces a snapshot
// with status unavailable.
func (c *Client) Topology(ctx context.Context) Snapshot {
	if c.baseURL == "" {
		return unavailable("no Patroni endpoint configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cluster", nil)
	if err != nil {
		return unavailable("building Patroni request: " + err.Error())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return unavailable("querying Patroni: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unavailable(fmt.Sprintf("Patroni returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return unavailable("reading Patroni response: " + err.Error())
	}

	var pc patroniCluster
	if err := json.Unmarshal(body, &pc); err != nil {
		return unavailable("parsing Patroni response: " + err.Error())
	}

	return derive(pc)
}

func unavailable(message string) Snapshot {
	return Snapshot{
		Status:        StatusUnavailable,
		StatusMessage: &message,
		Members:       []Member{},
		Timestamp:     time.Now().UTC(),
	}
}

// derive normalizes Patroni's member list and classifies cluster health:
// ok when exactly one running leader exists, degraded otherwise.
func derive(pc patroniCluster) Snapshot {
	members := make([]Member, 0, len(pc.Members))
	leaders := 0

	for _, m := range pc.Members {
		member := Member{
			Name:     m.Name,
			Role:     m.Role,
			State:    m.State,
			Host:     m.Host,
			Port:     m.Port,
			Timeline: m.Timeline,
		}

		// Patroni reports lag as an integer, or the string "unknown".
		var lag int64
		if len(m.Lag) > 0 && json.Unmarshal(m.Lag, &lag) == nil {
			member.LagBytes = &lag
		}

		if m.Role == "leader" && m.State == "running" {
			leaders++
		}

		members = append(members, member)
	}

	snap := Snapshot{
		Scope:     pc.Scope,
		Status:    StatusOK,
		Members:   members,
		Timestamp: time.Now().UTC(),
	}

	if leaders != 1 {
		msg := fmt.Sprintf("expected one running leader, found %d", leaders)
		snap.Status = StatusDegraded
		snap.StatusMessage = &msg
	}

	return snap
}
