package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vgfx/forge/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"github.com/vgfx/forge/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"github.com/vgfx/forge/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/vgfx/forge/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.CheckerNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			checker, err := graft.Dep[ports.StalenessChecker](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(checker, hasher, store, tracer), nil
		},
	})
}
