package domain

// TransformKind selects which external transformation a task performs.
type TransformKind int

const (
	// KindPreprocess runs the GLSL preprocessor and writes the processed
	// GLSL dialect (terminal for the GL3 target).
	KindPreprocess TransformKind = iota
	// KindCompile compiles GLSL to the intermediate SPIR-V binary.
	KindCompile
	// KindTranslate translates the intermediate binary to Metal source
	// (terminal for the Metal target).
	KindTranslate
)

// String returns a short kind label used in task names and logs.
func (k TransformKind) String() string {
	switch k {
	case KindCompile:
		return "spv"
	case KindTranslate:
		return "metal"
	default:
		return "gl3"
	}
}

// Task is one (source, output) transformation edge in the build graph.
// It uses InternedString for fields repeated across tasks, such as the
// shared include paths.
type Task struct {
	Name  InternedString
	Kind  TransformKind
	Unit  ShaderUnit
	Stage Stage

	// Source is the path passed to the external tool.
	Source InternedString

	// Output is the path the transformation produces.
	Output InternedString

	// Inputs are all paths whose modification invalidates Output. For
	// preprocess and compile tasks this is the source plus every shared
	// include; for translate tasks it is the intermediate binary.
	Inputs []InternedString

	// Dependencies are names of tasks that must complete first.
	Dependencies []InternedString
}
