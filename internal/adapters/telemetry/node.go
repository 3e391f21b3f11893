package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vgfx/forge/internal/adapters/render"
	"github.com/vgfx/forge/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.tracer"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{render.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			renderer, err := graft.Dep[ports.Renderer](ctx)
			if err != nil {
				return nil, err
			}
			NewTracerProvider(NewRenderBridge(renderer))
			return NewOTelTracer(), nil
		},
	})
}
