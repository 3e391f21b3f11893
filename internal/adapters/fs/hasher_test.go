package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgfx/forge/internal/adapters/fs"
	"github.com/vgfx/forge/internal/core/domain"
)

func hasherTask(source string) *domain.Task {
	return &domain.Task{
		Name:   domain.NewInternedString("spv/fill.fs.glsl"),
		Kind:   domain.KindCompile,
		Source: domain.NewInternedString(source),
		Output: domain.NewInternedString(source + ".spv"),
		Inputs: []domain.InternedString{domain.NewInternedString(source)},
	}
}

func TestHasher_ComputeFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fill.fs.glsl")
	writeFile(t, path, "void main() {}")

	hasher := fs.NewHasher()

	h1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)

	h2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "hashing the same content twice must agree")

	writeFile(t, path, "void main() { /* changed */ }")
	h3, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3, "different content must hash differently")

	_, err = hasher.ComputeFileHash(filepath.Join(dir, "gone"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingInput))
}

func TestHasher_ComputeInputHash(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "fill.fs.glsl")
	writeFile(t, source, "void main() {}")

	hasher := fs.NewHasher()
	task := hasherTask(source)
	salt := []string{"glslangValidator", "spirv-cross", "330"}

	h1, err := hasher.ComputeInputHash(task, salt)
	require.NoError(t, err)
	assert.Len(t, h1, 16, "hash is a fixed-width hex digest")

	t.Run("deterministic", func(t *testing.T) {
		h2, err := hasher.ComputeInputHash(task, salt)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})

	t.Run("salt change invalidates", func(t *testing.T) {
		h2, err := hasher.ComputeInputHash(task, []string{"glslangValidator", "spirv-cross", "430"})
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("content change invalidates", func(t *testing.T) {
		writeFile(t, source, "void main() { /* v2 */ }")
		h2, err := hasher.ComputeInputHash(task, salt)
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
		writeFile(t, source, "void main() {}")
	})

	t.Run("touch alone does not invalidate", func(t *testing.T) {
		st, err := os.Stat(source)
		require.NoError(t, err)
		require.NoError(t, os.Chtimes(source, st.ModTime().Add(1), st.ModTime().Add(1)))

		h2, err := hasher.ComputeInputHash(task, salt)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})

	t.Run("missing input is an error", func(t *testing.T) {
		_, err := hasher.ComputeInputHash(hasherTask(filepath.Join(dir, "gone")), salt)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingInput))
	})
}
