// Package watcher implements file system watching for the rebuild loop.
package watcher

import (
	"context"
	"iter"

	"github.com/fsnotify/fsnotify"

	"github.com/vgfx/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan string
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	return &Watcher{
		fsWatcher: fsw,
		events:    make(chan string, eventChannelBuffer),
	}, nil
}

// Start begins watching the given directories. Shader sources and includes
// live in flat directories, so there is no recursive walk.
func (w *Watcher) Start(ctx context.Context, dirs []string) error {
	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of modified file paths.
func (w *Watcher) Events() iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range w.events {
			if !yield(path) {
				return
			}
		}
	}
}

// processEvents converts raw fsnotify events to modified paths.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.events <- event.Name:
			case <-ctx.Done():
				return
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep going.
		}
	}
}
