package ports

import (
	"context"

	"github.com/vgfx/forge/internal/core/domain"
)

// Transformer executes a single transformation task: it invokes the external
// tool for the task's kind and writes the output file.
//
// Implementations must be atomic: on failure no partially written output may
// remain, and a previously built output must be left untouched.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Transformer interface {
	// Transform runs the task to completion or returns an error carrying
	// the tool's stderr and exit code.
	Transform(ctx context.Context, task *domain.Task) error
}

// ToolRunner invokes one external command-line tool.
type ToolRunner interface {
	// Run executes the tool with the given arguments and returns its
	// standard output. A non-zero exit or a missing executable is an
	// error with the captured stderr attached verbatim.
	Run(ctx context.Context, tool string, args ...string) ([]byte, error)
}
