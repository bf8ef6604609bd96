// Package backup aggregates pgBackRest repository state into a normalized
// status snapshot.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"time"
)

// Aggregator turns raw backup-tool output into Snapshots.
type Aggregator struct {
	runner Runner
}

// NewAggregator creates an Aggregator using the given Runner.
func NewAggregator(runner Runner) *Aggregator {
	return &Aggregator{runner: runner}
}

// Status invokes the backup tool for the given stanza and derives a
// Snapshot. It never fails: tool absence, invocation errors, and malformed
// output are all folded into the snapshot's status field.
func (a *Aggregator) Status(ctx context.Context, stanza string) Snapshot {
	output, err := a.runner.Info(ctx, stanza)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return degraded(stanza, StatusNotInstalled, "pgBackRest is not installed on this system")
		}
		return degraded(stanza, StatusUnavailable, "pgBackRest error: "+err.Error())
	}

	var infos []stanzaInfo
	if err := json.Unmarshal(output, &infos); err != nil {
		return degraded(stanza, StatusParseError, "failed to parse pgBackRest output: "+err.Error())
	}

	if len(infos) == 0 {
		return degraded(stanza, StatusNoStanza, "no stanza information available")
	}

	return derive(stanza, infos[0])
}

// degraded builds a snapshot for a transport-level failure.
func degraded(stanza, status, message string) Snapshot {
	return Snapshot{
		Stanza:        stanza,
		Status:        status,
		StatusMessage: &message,
		Backups:       []Entry{},
		Timestamp:     time.Now().UTC(),
	}
}

// derive maps one stanza entry from the tool's JSON into a Snapshot.
func derive(stanza string, info stanzaInfo) Snapshot {
	var status string
	switch info.Status.Code {
	case 0:
		status = StatusOK
	case 1:
		status = StatusMissingStanza
	case 2:
		status = StatusNoBackup
	default:
		status = StatusError
	}

	backups := make([]Entry, 0, len(info.Backup))
	var lastFull, lastDiff *time.Time

	for _, b := range info.Backup {
		entry := Entry{
			Label: b.Label,
			Type:  b.Type,
		}

		if b.Timestamp.Start > 0 {
			t := time.Unix(b.Timestamp.Start, 0).UTC()
			entry.StartTime = &t
		}
		if b.Timestamp.Stop > 0 {
			t := time.Unix(b.Timestamp.Stop, 0).UTC()
			entry.StopTime = &t

			switch b.Type {
			case "full":
				if lastFull == nil || t.After(*lastFull) {
					lastFull = &t
				}
			case "diff":
				if lastDiff == nil || t.After(*lastDiff) {
					lastDiff = &t
				}
			}
		}
		if b.Info.Size > 0 {
			size := b.Info.Size
			entry.SizeBytes = &size
		}
		if b.Info.Repository.Size > 0 {
			size := b.Info.Repository.Size
			entry.RepositorySizeBytes = &size
		}

		backups = append(backups, entry)
	}

	var walArchive *WALArchive
	if len(info.Archive) > 0 {
		walArchive = &WALArchive{}
		if info.Archive[0].Min != "" {
			min := info.Archive[0].Min
			walArchive.MinWAL = &min
		}
		if info.Archive[0].Max != "" {
			max := info.Archive[0].Max
			walArchive.MaxWAL = &max
		}
	}

	var statusMessage *string
	if status != StatusOK {
		msg := info.Status.Message
		statusMessage = &msg
	}

	return Snapshot{
		Stanza:         stanza,
		Status:         status,
		StatusMessage:  statusMessage,
		Backups:        backups,
		WALArchive:     walArchive,
		LastFullBackup: lastFull,
		LastDiffBackup: lastDiff,
		Timestamp:      time.Now().UTC(),
	}
}
