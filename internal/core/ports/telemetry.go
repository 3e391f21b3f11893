package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Span attribute keys shared between the scheduler and the render bridge.
const (
	// AttrTask marks a span as a build task span; only those reach the
	// renderer.
	AttrTask = "forge.task"
	// AttrStatus carries the terminal task status.
	AttrStatus = "forge.status"
)

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Attributes are set on the span before it starts, so span processors
	// observe them in OnStart.
	Attributes map[string]string
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithAttribute sets a string attribute at span start.
func WithAttribute(key, value string) SpanOption {
	return func(cfg *SpanConfig) {
		if cfg.Attributes == nil {
			cfg.Attributes = make(map[string]string)
		}
		cfg.Attributes[key] = value
	}
}
