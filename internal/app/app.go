// Package app implements the application layer for forge.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vgfx/forge/internal/adapters/cas" //nolint:depguard // State dir location is shared with the store
	"github.com/vgfx/forge/internal/adapters/watcher"
	"github.com/vgfx/forge/internal/core/domain"
	"github.com/vgfx/forge/internal/core/ports"
	"github.com/vgfx/forge/internal/engine/pipeline"
	"github.com/vgfx/forge/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// debounceWindow coalesces bursts of file events (editors write several
// times per save) into one rebuild.
const debounceWindow = 250 * time.Millisecond

// BuildOptions configure a build invocation.
type BuildOptions struct {
	// Manifest is the path to the shaders.yaml manifest.
	Manifest string
	// Jobs limits parallel tool invocations; 0 means NumCPU.
	Jobs int
	// Force rebuilds everything regardless of staleness.
	Force bool
}

// App represents the main application logic.
type App struct {
	loader  ports.ConfigLoader
	sched   *scheduler.Scheduler
	runner  ports.ToolRunner
	watcher ports.Watcher
	logger  ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	runner ports.ToolRunner,
	w ports.Watcher,
	logger ports.Logger,
) *App {
	return &App{
		loader:  loader,
		sched:   sched,
		runner:  runner,
		watcher: w,
		logger:  logger,
	}
}

// Build runs the full pipeline for every shader unit in the manifest.
// It returns domain.ErrBuildFailed if any task failed; individual failures
// are logged with the tool's stderr attached.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	manifest, err := a.loader.Load(opts.Manifest)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	graph, err := manifest.Graph()
	if err != nil {
		return zerr.Wrap(err, "failed to build task graph")
	}

	pipe := pipeline.New(a.runner, manifest)

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	summary, err := a.sched.Run(ctx, graph, pipe, scheduler.Options{
		Parallelism: jobs,
		Force:       opts.Force,
		Salt:        pipe.Salt(),
	})

	a.logger.Info(fmt.Sprintf("%d built, %d up to date, %d failed",
		summary.Built, summary.UpToDate, summary.Failed))

	if err != nil {
		a.logger.Error(err)
		return domain.ErrBuildFailed
	}
	return nil
}

// Clean deletes every computed output: the gl3/ and metal/ target trees, the
// intermediate build directory, and the build info state.
func (a *App) Clean(_ context.Context, manifestPath string) error {
	manifest, err := a.loader.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	dirs := append(manifest.OutputDirs(), cas.DefaultDir)
	var errs error
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove"), "dir", dir))
		}
	}
	return errs
}

// Watch builds once, then rebuilds whenever a manifest input changes, until
// the context is canceled.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	manifest, err := a.loader.Load(opts.Manifest)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	// A failed initial build is not fatal in watch mode; the next change
	// gets another chance.
	if err := a.Build(ctx, opts); err != nil && !errors.Is(err, domain.ErrBuildFailed) {
		return err
	}

	rebuild := make(chan struct{}, 1)
	deb := watcher.NewDebouncer(debounceWindow, func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))
		select {
		case rebuild <- struct{}{}:
		default:
		}
	})

	if err := a.watcher.Start(ctx, []string{manifest.SourceDir, manifest.IncludeDir}); err != nil {
		return err
	}
	defer a.watcher.Stop() //nolint:errcheck // Best effort close on shutdown

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The event stream ends when the context is canceled or the
		// watcher is stopped. The debounce timer may still fire after
		// that, so rebuild is never closed.
		for path := range a.watcher.Events() {
			deb.Add(path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-rebuild:
				if err := a.Build(ctx, opts); err != nil && !errors.Is(err, domain.ErrBuildFailed) {
					return err
				}
			}
		}
	})

	return g.Wait()
}
