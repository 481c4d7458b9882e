package services

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external tool. Services accept a custom runner so
// tests can fake tool behavior without the binaries installed.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// DefaultCommandRunner executes the command and folds its combined output into
// the returned error so tool failures carry their own diagnostics.
func DefaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
