package ports

import "github.com/vgfx/forge/internal/core/domain"

// StalenessChecker implements the make-style incremental rule.
//
//go:generate go run go.uber.org/mock/mockgen -source=staleness.go -destination=mocks/mock_staleness.go -package=mocks
type StalenessChecker interface {
	// Stale reports whether the task's output must be rebuilt: the output
	// is missing, or any input's modification time is newer than the
	// output's. A missing input is an error.
	Stale(task *domain.Task) (bool, error)
}
