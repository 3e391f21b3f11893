package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgfx/forge/internal/adapters/fs"
	"github.com/vgfx/forge/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func touch(t *testing.T, path string, when time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, when, when))
}

func stalenessTask(source, include, output string) *domain.Task {
	inputs := []domain.InternedString{domain.NewInternedString(source)}
	if include != "" {
		inputs = append(inputs, domain.NewInternedString(include))
	}
	return &domain.Task{
		Name:   domain.NewInternedString("gl3/fill.fs.glsl"),
		Source: domain.NewInternedString(source),
		Output: domain.NewInternedString(output),
		Inputs: inputs,
	}
}

func TestChecker_Stale(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "fill.fs.glsl")
	include := filepath.Join(dir, "common.inc.glsl")
	output := filepath.Join(dir, "out.glsl")

	base := time.Now().Add(-time.Hour)

	writeFile(t, source, "void main() {}")
	writeFile(t, include, "// shared")
	touch(t, source, base)
	touch(t, include, base)

	checker := fs.NewChecker()
	task := stalenessTask(source, include, output)

	t.Run("missing output is stale", func(t *testing.T) {
		stale, err := checker.Stale(task)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("output newer than all inputs is fresh", func(t *testing.T) {
		writeFile(t, output, "processed")
		touch(t, output, base.Add(time.Minute))

		stale, err := checker.Stale(task)
		require.NoError(t, err)
		assert.False(t, stale)
	})

	t.Run("newer source makes output stale", func(t *testing.T) {
		touch(t, source, base.Add(2*time.Minute))

		stale, err := checker.Stale(task)
		require.NoError(t, err)
		assert.True(t, stale)

		touch(t, source, base)
	})

	t.Run("newer include makes output stale", func(t *testing.T) {
		touch(t, include, base.Add(2*time.Minute))

		stale, err := checker.Stale(task)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("missing input is an error", func(t *testing.T) {
		missing := stalenessTask(filepath.Join(dir, "gone.fs.glsl"), "", output)
		_, err := checker.Stale(missing)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingInput))
	})
}
