package backup

import (
	"context"
	"os/exec"
	"time"
)

const infoTimeout = 30 * time.Second

// Runner invokes the backup tool and returns its raw output. It is the
// process boundary to pgBackRest, kept narrow so aggregation logic can be
// tested without the binary.
type Runner interface {
	Info(ctx context.Context, stanza string) ([]byte, error)
}

// ExecRunner runs the pgbackrest binary found on PATH.
type ExecRunner struct{}

// Info executes `pgbackrest --stanza=<name> info --output=json` with a
// bounded timeout derived from the request context.
func (ExecRunner) Info(ctx context.Context, stanza string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pgbackrest", "--stanza="+stanza, "info", "--output=json")
	return cmd.Output()
}
