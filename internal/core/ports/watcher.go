package ports

import (
	"context"
	"iter"
)

// Watcher observes manifest inputs for modification.
type Watcher interface {
	// Start begins watching the given directories.
	Start(ctx context.Context, dirs []string) error
	// Events yields paths of modified files until the watcher stops.
	Events() iter.Seq[string]
	// Stop stops the watcher and releases all resources.
	Stop() error
}
