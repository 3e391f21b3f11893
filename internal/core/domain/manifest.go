package domain

import "path/filepath"

// Toolchain names or paths of the external tools the pipeline drives.
type Toolchain struct {
	// Glslang is the GLSL validator/compiler (preprocess and SPIR-V steps).
	Glslang string
	// SPIRVCross is the SPIR-V to Metal source translator.
	SPIRVCross string
}

// Manifest is the static description of everything the pipeline builds:
// the shader units, the shared includes, and the directory and tool
// configuration. It is recreated fresh on every invocation.
type Manifest struct {
	TargetDir   string
	BuildDir    string
	SourceDir   string
	IncludeDir  string
	GLSLVersion int
	Tools       Toolchain

	Shaders  []ShaderUnit
	Includes []IncludeFile
}

// includePaths returns the resolved paths of all shared includes.
func (m *Manifest) includePaths() []InternedString {
	paths := make([]InternedString, len(m.Includes))
	for i, inc := range m.Includes {
		paths[i] = NewInternedString(filepath.Join(m.IncludeDir, inc.Name.String()))
	}
	return paths
}

// OutputDirs returns every directory the pipeline writes into. Used by the
// clean action.
func (m *Manifest) OutputDirs() []string {
	return []string{
		filepath.Join(m.TargetDir, "gl3"),
		filepath.Join(m.TargetDir, "metal"),
		m.BuildDir,
	}
}

// Graph expands the manifest into the task dependency graph: three tasks per
// shader unit, where the Metal translation strictly follows the SPIR-V
// compilation of the same unit. Preprocess and compile tasks have no
// dependencies and fan out freely.
func (m *Manifest) Graph() (*Graph, error) {
	g := NewGraph()
	includes := m.includePaths()

	for _, unit := range m.Shaders {
		source := NewInternedString(filepath.Join(m.SourceDir, unit.File()))
		sourceInputs := append([]InternedString{source}, includes...)

		gl3 := unit.Resolve(FormatGL3, m.TargetDir, m.BuildDir)
		spv := unit.Resolve(FormatSPIRV, m.TargetDir, m.BuildDir)
		metal := unit.Resolve(FormatMetal, m.TargetDir, m.BuildDir)

		spvTask := taskName(KindCompile, unit)

		tasks := []*Task{
			{
				Name:   taskName(KindPreprocess, unit),
				Kind:   KindPreprocess,
				Unit:   unit,
				Stage:  unit.Stage,
				Source: source,
				Output: NewInternedString(gl3.Path),
				Inputs: sourceInputs,
			},
			{
				Name:   spvTask,
				Kind:   KindCompile,
				Unit:   unit,
				Stage:  unit.Stage,
				Source: source,
				Output: NewInternedString(spv.Path),
				Inputs: sourceInputs,
			},
			{
				Name:         taskName(KindTranslate, unit),
				Kind:         KindTranslate,
				Unit:         unit,
				Stage:        unit.Stage,
				Source:       NewInternedString(spv.Path),
				Output:       NewInternedString(metal.Path),
				Inputs:       []InternedString{NewInternedString(spv.Path)},
				Dependencies: []InternedString{spvTask},
			},
		}

		for _, t := range tasks {
			if err := g.AddTask(t); err != nil {
				return nil, err
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func taskName(kind TransformKind, unit ShaderUnit) InternedString {
	return NewInternedString(kind.String() + "/" + unit.File())
}
