package services

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes an external binary and blocks until it exits.
// Implementations must return an error classified through
// ClassifyCommandError so callers can distinguish a missing binary from a
// failed invocation.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// RunCommand is the default runner. The child inherits the process's
// stdout/stderr for its duration; invocations are strictly sequential so no
// interleaving occurs.
func RunCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return ClassifyCommandError(name, "run", err)
	}
	return nil
}

// CaptureRunner executes a binary and returns its trimmed stdout. Stderr
// still flows to the parent's stderr so tool diagnostics stay visible.
type CaptureRunner func(ctx context.Context, name string, args ...string) (string, error)

// RunCommandCapture is the default capture runner.
func RunCommandCapture(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", ClassifyCommandError(name, "run", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
