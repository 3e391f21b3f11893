package render_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vgfx/forge/internal/adapters/render"
	"github.com/vgfx/forge/internal/core/ports"
)

func TestRenderer_Built(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := render.NewRenderer(&buf)

	start := time.Now()
	r.OnTaskStart("span1", "gl3/fill.fs.glsl", start)
	r.OnTaskComplete("span1", "gl3/fill.fs.glsl", ports.StatusBuilt, start.Add(120*time.Millisecond), nil)

	assert.Equal(t, "+ gl3/fill.fs.glsl 120ms\n", buf.String())
}

func TestRenderer_UpToDate(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := render.NewRenderer(&buf)

	r.OnTaskComplete("span1", "gl3/fill.fs.glsl", ports.StatusUpToDate, time.Now(), nil)

	assert.Equal(t, "- gl3/fill.fs.glsl (up to date)\n", buf.String())
}

func TestRenderer_Failed(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := render.NewRenderer(&buf)

	now := time.Now()
	r.OnTaskStart("span1", "spv/fill.fs.glsl", now)
	r.OnTaskComplete("span1", "spv/fill.fs.glsl", ports.StatusFailed, now,
		errors.New("ERROR: 0:3: 'foo' : undeclared identifier"))

	assert.Equal(t, "x spv/fill.fs.glsl: ERROR: 0:3: 'foo' : undeclared identifier\n", buf.String())
}

func TestRenderer_UnknownSpanHasZeroDuration(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := render.NewRenderer(&buf)

	// Completion without a recorded start still prints a line.
	r.OnTaskComplete("span1", "gl3/fill.fs.glsl", ports.StatusBuilt, time.Now(), nil)

	assert.Equal(t, "+ gl3/fill.fs.glsl 0s\n", buf.String())
}
