package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vgfx/forge/internal/adapters/watcher"
)

func TestWatcher_WriteEvent(t *testing.T) {
	dir := t.TempDir()

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, []string{dir, dir}))

	got := make(chan string, 1)
	go func() {
		for path := range w.Events() {
			got <- path
			return
		}
	}()

	path := filepath.Join(dir, "fill.fs.glsl")
	require.NoError(t, os.WriteFile(path, []byte("void main() {}"), 0o644))

	select {
	case p := <-got:
		require.Equal(t, path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for write event")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	err = w.Start(context.Background(), []string{filepath.Join(t.TempDir(), "gone")})
	require.Error(t, err)
}
