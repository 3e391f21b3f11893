package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownSuffix is returned when a manifest entry does not match any
	// known shader source suffix.
	ErrUnknownSuffix = zerr.New("unknown shader source suffix")

	// ErrMissingInput is returned when a task input file does not exist.
	ErrMissingInput = zerr.New("input not found")

	// ErrToolFailed is returned when an external tool exits non-zero or
	// cannot be started.
	ErrToolFailed = zerr.New("tool invocation failed")

	// ErrTaskAlreadyExists is returned when attempting to add a task with a
	// name that already exists in the graph.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency
	// that is not in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the task graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrBuildFailed is returned by the application layer when one or more
	// tasks failed. The CLI maps it to a non-zero exit code.
	ErrBuildFailed = zerr.New("build failed")
)
