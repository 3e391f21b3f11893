// Package config provides the manifest loader for forge.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/vgfx/forge/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the manifest omits a field.
const (
	DefaultManifest    = "shaders.yaml"
	defaultTargetDir   = "../resources/shaders"
	defaultBuildDir    = "build"
	defaultGLSLVersion = 330
	defaultGlslang     = "glslangValidator"
	defaultSPIRVCross  = "spirv-cross"
)

// Loader implements ports.ConfigLoader using a YAML manifest file.
type Loader struct{}

// NewLoader creates a new manifest Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the manifest at the given path and returns it with defaults
// applied. Relative directories are resolved against the manifest's own
// directory, so a build started anywhere lands in the same tree.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var file Shaderfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	root := filepath.Dir(path)
	m := &domain.Manifest{
		TargetDir:   resolveDir(root, file.TargetDir, defaultTargetDir),
		BuildDir:    resolveDir(root, file.BuildDir, defaultBuildDir),
		SourceDir:   resolveDir(root, file.SourceDir, "."),
		IncludeDir:  resolveDir(root, file.IncludeDir, "."),
		GLSLVersion: file.GLSLVersion,
		Tools: domain.Toolchain{
			Glslang:    file.Tools.Glslang,
			SPIRVCross: file.Tools.SPIRVCross,
		},
	}
	if m.GLSLVersion == 0 {
		m.GLSLVersion = defaultGLSLVersion
	}
	if m.Tools.Glslang == "" {
		m.Tools.Glslang = defaultGlslang
	}
	if m.Tools.SPIRVCross == "" {
		m.Tools.SPIRVCross = defaultSPIRVCross
	}

	if len(file.Shaders) == 0 {
		return nil, zerr.With(zerr.New("manifest declares no shaders"), "path", path)
	}

	for _, name := range dedupe(file.Shaders) {
		unit, err := domain.ParseUnit(name)
		if err != nil {
			return nil, err
		}
		m.Shaders = append(m.Shaders, unit)
	}

	for _, name := range dedupe(file.Includes) {
		m.Includes = append(m.Includes, domain.IncludeFile{
			Name: domain.NewInternedString(name),
		})
	}

	return m, nil
}

func resolveDir(root, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

// dedupe sorts and deduplicates manifest entries so the task graph and all
// derived hashes are deterministic.
func dedupe(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
