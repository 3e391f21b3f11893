// Package scheduler implements parallel execution of the task graph.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vgfx/forge/internal/core/domain"
	"github.com/vgfx/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusBuilt indicates the task ran its tool and wrote its output.
	StatusBuilt TaskStatus = "Built"
	// StatusUpToDate indicates the task was skipped as fresh.
	StatusUpToDate TaskStatus = "UpToDate"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
)

// Summary counts terminal task states of one run.
type Summary struct {
	Built    int
	UpToDate int
	Failed   int
}

// Options configure one scheduler run.
type Options struct {
	// Parallelism is the maximum number of tool invocations in flight.
	Parallelism int
	// Force rebuilds every task regardless of staleness.
	Force bool
	// Salt is the configuration fingerprint mixed into input hashes.
	Salt []string
}

// Scheduler executes the tasks of a graph in dependency order, in parallel
// where the graph allows it.
type Scheduler struct {
	checker ports.StalenessChecker
	hasher  ports.Hasher
	store   ports.BuildInfoStore
	tracer  ports.Tracer

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	checker ports.StalenessChecker,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	tracer ports.Tracer,
) *Scheduler {
	return &Scheduler{
		checker:    checker,
		hasher:     hasher,
		store:      store,
		tracer:     tracer,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

func (s *Scheduler) getStatus(name domain.InternedString) TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[name]
}

// Run executes the graph's tasks through the given transformer. Task
// failures do not block unrelated tasks; dependents of a failed task are
// never started. All failures are joined into the returned error.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, exec ports.Transformer, opts Options) (Summary, error) {
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	state := s.newRunState(ctx, graph, exec, opts)

	done := state.ctx.Done()
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil {
			if state.active == 0 {
				return state.summary(), errors.Join(state.errs, state.ctx.Err())
			}
			// Canceled workers still report through resultsCh; a ready Done
			// channel would spin this loop until they drain.
			done = nil
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-done:
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.summary(), state.errs
}

type result struct {
	task domain.InternedString
	err  error
}

type runState struct {
	graph     *domain.Graph
	inDegree  map[domain.InternedString]int
	tasks     map[domain.InternedString]domain.Task
	ready     []domain.InternedString
	active    int
	resultsCh chan result
	errs      error
	ctx       context.Context
	exec      ports.Transformer
	opts      Options
	s         *Scheduler
}

func (s *Scheduler) newRunState(ctx context.Context, graph *domain.Graph, exec ports.Transformer, opts Options) *runState {
	taskCount := graph.TaskCount()
	inDegree := make(map[domain.InternedString]int, taskCount)
	tasks := make(map[domain.InternedString]domain.Task, taskCount)

	for task := range graph.Walk() {
		tasks[task.Name] = task
		inDegree[task.Name] = len(task.Dependencies)
		s.updateStatus(task.Name, StatusPending)
	}

	var ready []domain.InternedString
	for task := range graph.Walk() {
		if inDegree[task.Name] == 0 {
			ready = append(ready, task.Name)
		}
	}

	return &runState{
		graph:     graph,
		inDegree:  inDegree,
		tasks:     tasks,
		ready:     ready,
		resultsCh: make(chan result, opts.Parallelism),
		ctx:       ctx,
		exec:      exec,
		opts:      opts,
		s:         s,
	}
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.opts.Parallelism && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(taskName, StatusRunning)

		go func(t domain.Task) {
			state.resultsCh <- result{task: t.Name, err: state.executeTask(state.ctx, &t)}
		}(state.tasks[taskName])
	}
}

// executeTask applies the incremental rule, runs the transformer on a miss,
// and records the result in the build info store.
func (state *runState) executeTask(ctx context.Context, task *domain.Task) error {
	ctx, span := state.s.tracer.Start(ctx, task.Name.String(),
		ports.WithAttribute(ports.AttrTask, "true"))
	defer span.End()

	fresh, inputHash, err := state.checkFresh(task)
	if err != nil {
		span.RecordError(err)
		span.SetAttribute(ports.AttrStatus, string(ports.StatusFailed))
		return err
	}
	if fresh {
		state.s.updateStatus(task.Name, StatusUpToDate)
		span.SetAttribute(ports.AttrStatus, string(ports.StatusUpToDate))
		return nil
	}

	if err := state.exec.Transform(ctx, task); err != nil {
		span.RecordError(err)
		span.SetAttribute(ports.AttrStatus, string(ports.StatusFailed))
		return err
	}

	span.SetAttribute(ports.AttrStatus, string(ports.StatusBuilt))
	return state.updateStore(task, inputHash)
}

// checkFresh reports whether the task's output can be kept. The mtime rule
// is authoritative: a stale output is always rebuilt. A fresh output is
// additionally revalidated against the recorded input hash, so configuration
// changes rebuild even when no file timestamp moved.
func (state *runState) checkFresh(task *domain.Task) (bool, string, error) {
	if state.opts.Force {
		return false, "", nil
	}

	stale, err := state.s.checker.Stale(task)
	if err != nil {
		return false, "", err
	}
	if stale {
		return false, "", nil
	}

	inputHash, err := state.s.hasher.ComputeInputHash(task, state.opts.Salt)
	if err != nil {
		return false, "", err
	}

	info, err := state.s.store.Get(task.Name.String())
	if err != nil {
		return false, inputHash, err
	}
	if info != nil && info.InputHash == inputHash {
		return true, inputHash, nil
	}
	return false, inputHash, nil
}

func (state *runState) updateStore(task *domain.Task, inputHash string) error {
	if inputHash == "" {
		var err error
		inputHash, err = state.s.hasher.ComputeInputHash(task, state.opts.Salt)
		if err != nil {
			return err
		}
	}

	outputHash, err := state.s.hasher.ComputeFileHash(task.Output.String())
	if err != nil {
		return err
	}

	return state.s.store.Put(domain.BuildInfo{
		TaskName:   task.Name.String(),
		InputHash:  inputHash,
		OutputHash: fmt.Sprintf("%016x", outputHash),
		Timestamp:  time.Now(),
	})
}

func (state *runState) handleResult(res result) {
	state.active--
	if res.err != nil {
		wrapped := zerr.With(zerr.Wrap(res.err, "task failed"), "task", res.task.String())
		state.errs = errors.Join(state.errs, wrapped)
		state.s.updateStatus(res.task, StatusFailed)
		return
	}

	if state.s.getStatus(res.task) == StatusRunning {
		state.s.updateStatus(res.task, StatusBuilt)
	}
	for _, dep := range state.graph.Dependents(res.task) {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

func (state *runState) summary() Summary {
	state.s.mu.RLock()
	defer state.s.mu.RUnlock()

	var sum Summary
	for _, status := range state.s.taskStatus {
		switch status {
		case StatusBuilt:
			sum.Built++
		case StatusUpToDate:
			sum.UpToDate++
		case StatusFailed:
			sum.Failed++
		}
	}
	return sum
}
