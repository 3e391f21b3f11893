package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgfx/forge/internal/adapters/config"
	"github.com/vgfx/forge/internal/core/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "shaders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeManifest(t, `
version: "1"
target_dir: out
build_dir: scratch
glsl_version: 430
tools:
  glslang: /opt/glslang/bin/glslangValidator
  spirv_cross: spirv-cross
shaders:
  - fill.fs.glsl
  - fill.vs.glsl
includes:
  - tile_fragment.inc.glsl
`)

	m, err := config.NewLoader().Load(path)
	require.NoError(t, err)

	root := filepath.Dir(path)
	assert.Equal(t, filepath.Join(root, "out"), m.TargetDir)
	assert.Equal(t, filepath.Join(root, "scratch"), m.BuildDir)
	assert.Equal(t, root, m.SourceDir)
	assert.Equal(t, root, m.IncludeDir)
	assert.Equal(t, 430, m.GLSLVersion)
	assert.Equal(t, "/opt/glslang/bin/glslangValidator", m.Tools.Glslang)
	assert.Equal(t, "spirv-cross", m.Tools.SPIRVCross)

	require.Len(t, m.Shaders, 2)
	assert.Equal(t, "fill.fs.glsl", m.Shaders[0].File())
	assert.Equal(t, "fill.vs.glsl", m.Shaders[1].File())
	require.Len(t, m.Includes, 1)
	assert.Equal(t, "tile_fragment.inc.glsl", m.Includes[0].Name.String())
}

func TestLoader_Load_Defaults(t *testing.T) {
	path := writeManifest(t, `
shaders:
  - blit.fs.glsl
`)

	m, err := config.NewLoader().Load(path)
	require.NoError(t, err)

	root := filepath.Dir(path)
	assert.Equal(t, filepath.Join(root, "..", "resources", "shaders"), m.TargetDir)
	assert.Equal(t, filepath.Join(root, "build"), m.BuildDir)
	assert.Equal(t, 330, m.GLSLVersion)
	assert.Equal(t, "glslangValidator", m.Tools.Glslang)
	assert.Equal(t, "spirv-cross", m.Tools.SPIRVCross)
	assert.Empty(t, m.Includes)
}

func TestLoader_Load_DedupesAndSorts(t *testing.T) {
	path := writeManifest(t, `
shaders:
  - tile.vs.glsl
  - blit.fs.glsl
  - tile.vs.glsl
`)

	m, err := config.NewLoader().Load(path)
	require.NoError(t, err)

	require.Len(t, m.Shaders, 2)
	assert.Equal(t, "blit.fs.glsl", m.Shaders[0].File())
	assert.Equal(t, "tile.vs.glsl", m.Shaders[1].File())
}

func TestLoader_Load_AbsoluteDirsKept(t *testing.T) {
	path := writeManifest(t, `
target_dir: /srv/shaders
shaders:
  - blit.fs.glsl
`)

	m, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/srv/shaders"), m.TargetDir)
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeManifest(t, "shaders: [unclosed")
		_, err := config.NewLoader().Load(path)
		require.Error(t, err)
	})

	t.Run("no shaders", func(t *testing.T) {
		path := writeManifest(t, `version: "1"`)
		_, err := config.NewLoader().Load(path)
		require.Error(t, err)
	})

	t.Run("unknown suffix", func(t *testing.T) {
		path := writeManifest(t, `
shaders:
  - fill.comp.glsl
`)
		_, err := config.NewLoader().Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnknownSuffix))
	})
}
