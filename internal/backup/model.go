package backup

import "time"

// Status values reported in a Snapshot. Transport-level failures of the
// backup tool itself map to the last four values; the first five mirror
// pgBackRest's own status codes.
const (
	StatusOK            = "ok"
	StatusMissingStanza = "missing_stanza"
	StatusNoBackup      = "no_backup"
	StatusError         = "error"

	StatusNotInstalled = "not_installed"
	StatusUnavailable  = "unavailable"
	StatusParseError   = "parse_error"
	StatusNoStanza     = "no_stanza"
)

// Entry describes a single backup in the repository.
type Entry struct {
	Label               string     `json:"label"`
	Type                string     `json:"type"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	StopTime            *time.Time `json:"stop_time,omitempty"`
	SizeBytes           *int64     `json:"size_bytes,omitempty"`
	RepositorySizeBytes *int64     `json:"repository_size_bytes,omitempty"`
}

// WALArchive is the range of archived WAL segments.
type WALArchive struct {
	MinWAL *string `json:"min_wal,omitempty"`
	MaxWAL *string `json:"max_wal,omitempty"`
}

// Snapshot is a derived, read-only view of backup state, recomputed on
// every request and never persisted.
type Snapshot struct {
	Stanza         string      `json:"stanza"`
	Status         string      `json:"status"`
	StatusMessage  *string     `json:"status_message,omitempty"`
	Backups        []Entry     `json:"backups"`
	WALArchive     *WALArchive `json:"wal_archive,omitempty"`
	LastFullBackup *time.Time  `json:"last_full_backup,omitempty"`
	LastDiffBackup *time.Time  `json:"last_diff_backup,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// stanzaInfo mirrors the JSON emitted by `pgbackrest info --output=json`.
// Every nested field is optional upstream, so zero values are tolerated
// throughout.
type stanzaInfo struct {
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
	Backup []struct {
		Label     string `json:"label"`
		Type      string `json:"type"`
		Timestamp struct {
			Start int64 `json:"start"`
			Stop  int64 `json:"stop"`
		} `json:"timestamp"`
		Info struct {
			Size       int64 `json:"size"`
			Repository struct {
				Size int64 `json:"size"`
			} `json:"repository"`
		} `json:"info"`
	} `json:"backup"`
	Archive []struct {
		Min string `json:"min"`
		Max string `json:"max"`
	} `json:"archive"`
}
