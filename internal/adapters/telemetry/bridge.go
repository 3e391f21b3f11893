package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vgfx/forge/internal/core/ports"
)

// RenderBridge implements sdktrace.SpanProcessor and forwards task spans to
// the progress renderer.
type RenderBridge struct {
	renderer ports.Renderer
}

// NewRenderBridge returns a new RenderBridge.
func NewRenderBridge(renderer ports.Renderer) *RenderBridge {
	return &RenderBridge{
		renderer: renderer,
	}
}

// OnStart is called when a span starts.
func (b *RenderBridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}
	if !isTaskSpan(s) {
		return
	}
	b.renderer.OnTaskStart(s.SpanContext().SpanID().String(), s.Name(), s.StartTime())
}

// OnEnd is called when a span ends.
func (b *RenderBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}
	status, ok := taskStatus(s)
	if !ok {
		return
	}

	var err error
	if s.Status().Code == codes.Error || status == ports.StatusFailed {
		desc := s.Status().Description
		if desc == "" {
			desc = "task failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnTaskComplete(s.SpanContext().SpanID().String(), s.Name(), status, s.EndTime(), err)
}

// ForceFlush does nothing.
func (b *RenderBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *RenderBridge) Shutdown(_ context.Context) error {
	return nil
}

func isTaskSpan(s sdktrace.ReadWriteSpan) bool {
	for _, attr := range s.Attributes() {
		if string(attr.Key) == ports.AttrTask {
			return true
		}
	}
	return false
}

func taskStatus(s sdktrace.ReadOnlySpan) (ports.TaskStatus, bool) {
	var (
		status ports.TaskStatus
		task   bool
	)
	for _, attr := range s.Attributes() {
		switch string(attr.Key) {
		case ports.AttrTask:
			task = true
		case ports.AttrStatus:
			status = ports.TaskStatus(attr.Value.AsString())
		}
	}
	if status == "" {
		status = ports.StatusBuilt
	}
	return status, task
}
