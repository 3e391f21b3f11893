// Package pipeline implements the transform runner: one external tool
// invocation per task, followed by output post-processing and an atomic
// write.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vgfx/forge/internal/core/domain"
	"github.com/vgfx/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// mslVersion is the Metal Shading Language version requested from the
// translator (2.1).
const mslVersion = "020100"

var _ ports.Transformer = (*Pipeline)(nil)

// Pipeline implements ports.Transformer over a ToolRunner and the manifest's
// tool configuration.
type Pipeline struct {
	runner     ports.ToolRunner
	tools      domain.Toolchain
	includeDir string
	version    int
}

// New creates a Pipeline for the given manifest.
func New(runner ports.ToolRunner, m *domain.Manifest) *Pipeline {
	return &Pipeline{
		runner:     runner,
		tools:      m.Tools,
		includeDir: m.IncludeDir,
		version:    m.GLSLVersion,
	}
}

// Salt returns the configuration strings that participate in input hashing,
// so a tool or version change invalidates previous builds.
func (p *Pipeline) Salt() []string {
	return []string{
		p.tools.Glslang,
		p.tools.SPIRVCross,
		p.includeDir,
		strconv.Itoa(p.version),
		mslVersion,
	}
}

// Transform runs the task to completion. On failure no partially written
// output remains; a previously built output is left untouched.
func (p *Pipeline) Transform(ctx context.Context, task *domain.Task) error {
	var err error
	switch task.Kind {
	case domain.KindCompile:
		err = p.compile(ctx, task)
	case domain.KindTranslate:
		err = p.translate(ctx, task)
	default:
		err = p.preprocess(ctx, task)
	}
	if err != nil {
		wrapped := zerr.Wrap(err, "failed to transform "+task.Source.String())
		return zerr.With(zerr.With(wrapped, "task", task.Name.String()), "file", task.Source.String())
	}
	return nil
}

// preprocess runs the GLSL preprocessor and writes the processed source with
// the version pragma and banner prepended.
func (p *Pipeline) preprocess(ctx context.Context, task *domain.Task) error {
	out, err := p.runner.Run(ctx, p.tools.Glslang,
		"-S", task.Stage.String(),
		"-E",
		"-I"+p.includeDir,
		task.Source.String(),
	)
	if err != nil {
		return err
	}

	content := glslHeader(p.version)
	content = append(content, stripDirectives(out)...)
	return writeFileAtomic(task.Output.String(), content)
}

// compile compiles GLSL to the intermediate SPIR-V binary. The tool writes
// the file itself, so it is pointed at a temp path that is renamed into
// place on success and removed on failure.
func (p *Pipeline) compile(ctx context.Context, task *domain.Task) error {
	output := task.Output.String()
	if err := ensureDir(filepath.Dir(output)); err != nil {
		return err
	}

	tmp := output + ".tmp"
	_, err := p.runner.Run(ctx, p.tools.Glslang,
		"-G"+strconv.Itoa(p.version),
		"-S", task.Stage.String(),
		"-I"+p.includeDir,
		"-o", tmp,
		task.Source.String(),
	)
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, output); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to move intermediate into place"), "path", output)
	}
	return nil
}

// translate converts the intermediate binary to Metal source with the banner
// prepended.
func (p *Pipeline) translate(ctx context.Context, task *domain.Task) error {
	out, err := p.runner.Run(ctx, p.tools.SPIRVCross,
		"--msl",
		"--msl-version", mslVersion,
		task.Source.String(),
	)
	if err != nil {
		return err
	}

	content := metalHeader()
	content = append(content, stripDirectives(out)...)
	return writeFileAtomic(task.Output.String(), content)
}

// ensureDir creates the directory idempotently.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", dir)
	}
	return nil
}

// writeFileAtomic writes data via a temp file in the destination directory
// and renames it into place. On any failure the temp file is removed and the
// destination is left as it was.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".forge-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp output"), "dir", dir)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to write output"), "path", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to close output"), "path", path)
	}

	if err := os.Chmod(tmp, 0o644); err != nil { //nolint:gosec // generated sources are world-readable
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to set output permissions"), "path", path)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "failed to move output into place"), "path", path)
	}
	return nil
}
