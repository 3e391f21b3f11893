// Package domain contains the core domain models for the shader build graph.
package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Stage identifies the pipeline stage a shader source targets.
type Stage int

const (
	// StageFragment is a fragment shader.
	StageFragment Stage = iota
	// StageVertex is a vertex shader.
	StageVertex
)

// String returns the stage name as understood by glslangValidator's -S flag.
func (s Stage) String() string {
	if s == StageVertex {
		return "vert"
	}
	return "frag"
}

// Ext returns the short stage extension used in file names ("fs" or "vs").
func (s Stage) Ext() string {
	if s == StageVertex {
		return "vs"
	}
	return "fs"
}

// suffixRule maps a source file suffix to a shader stage. The table is
// ordered; the first matching suffix wins.
type suffixRule struct {
	suffix string
	stage  Stage
}

var suffixRules = []suffixRule{
	{suffix: ".fs.glsl", stage: StageFragment},
	{suffix: ".vs.glsl", stage: StageVertex},
}

// ShaderUnit is one fragment- or vertex-stage shader source file, identified
// by its base name and stage.
type ShaderUnit struct {
	Name  InternedString
	Stage Stage
}

// ParseUnit derives a ShaderUnit from a manifest file name by suffix.
// Unrecognized suffixes are a configuration error.
func ParseUnit(file string) (ShaderUnit, error) {
	for _, rule := range suffixRules {
		if strings.HasSuffix(file, rule.suffix) && len(file) > len(rule.suffix) {
			return ShaderUnit{
				Name:  NewInternedString(strings.TrimSuffix(file, rule.suffix)),
				Stage: rule.stage,
			}, nil
		}
	}
	return ShaderUnit{}, zerr.With(zerr.Wrap(ErrUnknownSuffix, ""), "file", file)
}

// File returns the source file name of the unit, e.g. "fill.fs.glsl".
func (u ShaderUnit) File() string {
	return u.Name.String() + "." + u.Stage.Ext() + ".glsl"
}

// IncludeFile is a shared include source. Every shader output depends on the
// full include set; a change to any include invalidates every output.
type IncludeFile struct {
	Name InternedString
}

// Format identifies an output target format.
type Format int

const (
	// FormatGL3 is the preprocessed GLSL dialect written under gl3/.
	FormatGL3 Format = iota
	// FormatSPIRV is the intermediate binary consumed by the Metal translator.
	FormatSPIRV
	// FormatMetal is Metal shader source written under metal/.
	FormatMetal
)

// OutputTarget is a derived output path for a shader unit in one format.
// It is never persisted independently of its source unit.
type OutputTarget struct {
	Format Format
	Path   string
}

// Resolve maps the unit to its output path in the given format by suffix
// substitution. targetDir holds the terminal gl3/ and metal/ trees; buildDir
// holds the scratch SPIR-V intermediates.
func (u ShaderUnit) Resolve(f Format, targetDir, buildDir string) OutputTarget {
	switch f {
	case FormatSPIRV:
		return OutputTarget{
			Format: FormatSPIRV,
			Path:   filepath.Join(buildDir, "metal", u.Name.String()+"."+u.Stage.Ext()+".spv"),
		}
	case FormatMetal:
		return OutputTarget{
			Format: FormatMetal,
			Path:   filepath.Join(targetDir, "metal", u.File()+".metal"),
		}
	default:
		return OutputTarget{
			Format: FormatGL3,
			Path:   filepath.Join(targetDir, "gl3", u.File()),
		}
	}
}
