package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vgfx/forge/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.hasher"
	// CheckerNodeID is the unique identifier for the staleness checker Graft node.
	CheckerNodeID graft.ID = "adapter.staleness"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.StalenessChecker]{
		ID:        CheckerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StalenessChecker, error) {
			return NewChecker(), nil
		},
	})
}
