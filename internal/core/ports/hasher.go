package ports

import "github.com/vgfx/forge/internal/core/domain"

// Hasher computes content hashes for cache invalidation.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash computes a single hash covering the task
	// definition, the given configuration salt (tool names, flags,
	// version), and the contents of all input files.
	ComputeInputHash(task *domain.Task, salt []string) (string, error)

	// ComputeFileHash computes the content hash of a single file.
	ComputeFileHash(path string) (uint64, error)
}
