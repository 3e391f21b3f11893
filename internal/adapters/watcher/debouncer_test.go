package watcher_test

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgfx/forge/internal/adapters/watcher"
)

func TestDebouncer_Add_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		d.Add("src/fill.fs.glsl")

		// Advance time past the debounce window.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		require.Len(t, receivedPaths, 1)
		assert.Equal(t, "src/fill.fs.glsl", receivedPaths[0])
	})
}

func TestDebouncer_Add_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var receivedPaths []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			callCount++
			receivedPaths = paths
		})

		// An editor save burst: several writes within one window, one of
		// them repeated.
		d.Add("src/fill.fs.glsl")
		d.Add("src/tile.vs.glsl")
		d.Add("src/fill.fs.glsl")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		require.Len(t, receivedPaths, 2, "duplicate paths must be deduplicated")
		assert.Contains(t, receivedPaths, "src/fill.fs.glsl")
		assert.Contains(t, receivedPaths, "src/tile.vs.glsl")
	})
}

func TestDebouncer_Add_ResetsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			callCount++
		})

		d.Add("src/fill.fs.glsl")
		time.Sleep(60 * time.Millisecond)

		// Still inside the first window; this extends it.
		d.Add("src/tile.vs.glsl")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 0, callCount, "window should have been reset")

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	var received []string
	d := watcher.NewDebouncer(time.Hour, func(paths []string) {
		received = paths
	})

	d.Add("src/fill.fs.glsl")
	d.Flush()

	require.Len(t, received, 1)
	assert.Equal(t, "src/fill.fs.glsl", received[0])
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	var callCount int
	d := watcher.NewDebouncer(time.Hour, func([]string) {
		callCount++
	})

	d.Flush()
	assert.Equal(t, 0, callCount, "flush with nothing pending must not fire")
}
