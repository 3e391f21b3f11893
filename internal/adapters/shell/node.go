package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vgfx/forge/internal/core/ports"
)

// NodeID is the unique identifier for the tool runner Graft node.
const NodeID graft.ID = "adapter.runner"

func init() {
	graft.Register(graft.Node[ports.ToolRunner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ToolRunner, error) {
			return NewRunner(), nil
		},
	})
}
