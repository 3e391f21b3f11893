// Package fs provides filesystem adapters: staleness checking and hashing.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"time"

	"github.com/vgfx/forge/internal/core/domain"
	"github.com/vgfx/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StalenessChecker = (*Checker)(nil)

// Checker implements the make-style incremental rule on modification times.
type Checker struct{}

// NewChecker creates a new staleness Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Stale reports whether the task's output must be rebuilt. The output is
// stale if it is missing or if any input's modification time is newer than
// the output's. A missing input is an error: the build cannot proceed for
// this task.
func (c *Checker) Stale(task *domain.Task) (bool, error) {
	var newest time.Time
	for _, input := range task.Inputs {
		info, err := os.Stat(input.String())
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return false, zerr.With(zerr.Wrap(domain.ErrMissingInput, ""), "path", input.String())
			}
			return false, zerr.With(zerr.Wrap(err, "failed to stat input"), "path", input.String())
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}

	out, err := os.Stat(task.Output.String())
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return true, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", task.Output.String())
	}

	return newest.After(out.ModTime()), nil
}
