package services

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrUnresolvable marks a location no resolver could handle.
	ErrUnresolvable = errors.New("unresolvable location")
	// ErrToolMissing marks an external binary that could not be found
	// (exec lookup failure or child exit code 127).
	ErrToolMissing = errors.New("external tool missing")
	// ErrExternalTool marks any other non-zero exit from a child process.
	ErrExternalTool = errors.New("external tool failed")
	// ErrUnsupportedMedia marks a file whose extension is in no allow-list.
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrValidation       = errors.New("validation error")
	ErrConfiguration    = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// missingToolExitCode is the shell convention for "command not found".
const missingToolExitCode = 127

// ClassifyCommandError maps a subprocess failure to the error taxonomy.
// Lookup failures and exit code 127 become ErrToolMissing; any other
// non-zero exit becomes ErrExternalTool.
func ClassifyCommandError(component, operation string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return Wrap(ErrToolMissing, component, operation, "binary not found on PATH", err)
	case errors.As(err, &exitErr):
		if exitErr.ExitCode() == missingToolExitCode {
			return Wrap(ErrToolMissing, component, operation, "binary not found on PATH", err)
		}
		return Wrap(ErrExternalTool, component, operation, fmt.Sprintf("exit code %d", exitErr.ExitCode()), err)
	default:
		return Wrap(ErrExternalTool, component, operation, "command failed", err)
	}
}

// IsFatal reports whether an error should abort the whole batch instead of
// failing a single file. Only a missing binary qualifies: retrying every
// remaining file against an absent tool cannot succeed.
func IsFatal(err error) bool {
	return errors.Is(err, ErrToolMissing)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
