// Package shell provides the external tool runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/vgfx/forge/internal/core/domain"
	"github.com/vgfx/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolRunner = (*Runner)(nil)

// Runner implements ports.ToolRunner using os/exec.
type Runner struct{}

// NewRunner creates a new tool Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the tool and returns its standard output. glslangValidator
// reports errors on stdout and spirv-cross on stderr, so on failure both
// streams are attached to the error verbatim along with the exit code.
func (r *Runner) Run(ctx context.Context, tool string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tool, args...) //nolint:gosec // tool is user configuration

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, zerr.With(zerr.Wrap(domain.ErrToolFailed, tool+" not found"), "tool", tool)
		}

		exitCode := -1 // unknown or signal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		// zerr renders only the message chain, so the diagnostics go into
		// the message itself, not just the metadata.
		msg := err.Error()
		if diag := diagnostics(&stdout, &stderr); diag != "" {
			msg += ": " + diag
		}

		toolErr := zerr.With(zerr.Wrap(domain.ErrToolFailed, msg), "tool", tool)
		toolErr = zerr.With(toolErr, "args", strings.Join(args, " "))
		toolErr = zerr.With(toolErr, "exit_code", exitCode)
		if s := stderr.String(); s != "" {
			toolErr = zerr.With(toolErr, "stderr", s)
		}
		if s := stdout.String(); s != "" {
			toolErr = zerr.With(toolErr, "stdout", s)
		}
		return nil, toolErr
	}

	return stdout.Bytes(), nil
}

// diagnostics joins the tool's output streams verbatim, stderr first.
func diagnostics(stdout, stderr *bytes.Buffer) string {
	var parts []string
	if s := strings.TrimRight(stderr.String(), "\n"); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimRight(stdout.String(), "\n"); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}
