// Package metrics collects a point-in-time snapshot of database health
// indicators.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pool operations the collector needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Snapshot is a derived, read-only view of database metrics. Never
// persisted; recomputed on every request.
type Snapshot struct {
	DatabaseSizeBytes      int64     `json:"database_size_bytes"`
	ActiveConnections      int       `json:"active_connections"`
	MaxConnections         int       `json:"max_connections"`
	ConnectionUsagePercent float64   `json:"connection_usage_percent"`
	TransactionsCommitted  int64     `json:"transactions_committed"`
	TransactionsRolledBack int64     `json:"transactions_rolled_back"`
	BlocksRead             int64     `json:"blocks_read"`
	BlocksHit              int64     `json:"blocks_hit"`
	CacheHitRatio          float64   `json:"cache_hit_ratio"`
	ReplicationLagBytes    *int64    `json:"replication_lag_bytes,omitempty"`
	IsInRecovery           bool      `json:"is_in_recovery"`
	Timestamp              time.Time `json:"timestamp"`
}

// Collector runs the fixed battery of metrics queries.
type Collector struct {
	db Querier
}

// NewCollector creates a Collector over the given querier.
func NewCollector(db Querier) *Collector {
	return &Collector{db: db}
}

// Collect gathers the snapshot. Failure of any mandatory query aborts the
// whole collection; only the replication-lag query is best-effort, since
// it is meaningful only transiently while a replica catches up.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	var dbSize int64
	err := c.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSize)
	if err != nil {
		return nil, fmt.Errorf("querying database size: %w", err)
	}

	var activeConns, maxConns int
	err = c.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM pg_stat_activity WHERE state = 'active'),
			(SELECT setting::int FROM pg_settings WHERE name = 'max_connections')
	`).Scan(&activeConns, &maxConns)
	if err != nil {
		return nil, fmt.Errorf("querying connection info: %w", err)
	}

	var committed, rolledBack, blocksRead, blocksHit int64
	err = c.db.QueryRow(ctx, `
		SELECT
			COALESCE(xact_commit, 0),
			COALESCE(xact_rollback, 0),
			COALESCE(blks_read, 0),
			COALESCE(blks_hit, 0)
		FROM pg_stat_database
		WHERE datname = current_database()
	`).Scan(&committed, &rolledBack, &blocksRead, &blocksHit)
	if err != nil {
		return nil, fmt.Errorf("querying transaction stats: %w", err)
	}

	var inRecovery bool
	err = c.db.QueryRow(ctx, "SELECT pg_is_in_recovery()").Scan(&inRecovery)
	if err != nil {
		return nil, fmt.Errorf("querying recovery status: %w", err)
	}

	var replicationLag *int64
	if inRecovery {
		var lag int64
		err = c.db.QueryRow(ctx, `
			SELECT CASE
				WHEN pg_last_wal_receive_lsn() IS NOT NULL
				THEN pg_wal_lsn_diff(pg_last_wal_receive_lsn(), pg_last_wal_replay_lsn())
				ELSE NULL
			END
		`).Scan(&lag)
		if err == nil {
			replicationLag = &lag
		}
	}

	cacheHitRatio := 100.0
	if total := blocksRead + blocksHit; total > 0 {
		cacheHitRatio = float64(blocksHit) / float64(total) * 100
	}

	connUsage := 0.0
	if maxConns > 0 {
		connUsage = float64(activeConns) / float64(maxConns) * 100
	}

	return &Snapshot{
		DatabaseSizeBytes:      dbSize,
		ActiveConnections:      activeConns,
		MaxConnections:         maxConns,
		ConnectionUsagePercent: connUsage,
		TransactionsCommitted:  committed,
		TransactionsRolledBack: rolledBack,
		BlocksRead:             blocksRead,
		BlocksHit:              blocksHit,
		CacheHitRatio:          cacheHitRatio,
		ReplicationLagBytes:    replicationLag,
		IsInRecovery:           inRecovery,
		Timestamp:              time.Now().UTC(),
	}, nil
}
