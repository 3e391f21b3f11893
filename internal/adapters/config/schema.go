package config

// Shaderfile represents the structure of the shaders.yaml manifest.
type Shaderfile struct {
	Version     string   `yaml:"version"`
	TargetDir   string   `yaml:"target_dir"`
	BuildDir    string   `yaml:"build_dir"`
	SourceDir   string   `yaml:"source_dir"`
	IncludeDir  string   `yaml:"include_dir"`
	GLSLVersion int      `yaml:"glsl_version"`
	Tools       ToolsDTO `yaml:"tools"`
	Shaders     []string `yaml:"shaders"`
	Includes    []string `yaml:"includes"`
}

// ToolsDTO names the external tools, either bare names resolved via PATH or
// absolute paths.
type ToolsDTO struct {
	Glslang    string `yaml:"glslang"`
	SPIRVCross string `yaml:"spirv_cross"`
}
