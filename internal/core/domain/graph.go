package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph is the dependency graph of transformation tasks. Dependency
// direction is strictly source -> intermediate -> final, so a valid manifest
// can never produce a cycle; Validate checks anyway and populates the
// execution order.
type Graph struct {
	tasks          map[InternedString]Task
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks:      make(map[InternedString]Task),
		dependents: make(map[InternedString][]InternedString),
	}
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same name already exists.
func (g *Graph) AddTask(t *Task) error {
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, ""), "task_name", t.Name.String())
	}
	g.tasks[t.Name] = *t
	for _, dep := range t.Dependencies {
		g.dependents[dep] = append(g.dependents[dep], t.Name)
	}
	return nil
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Dependents returns the names of tasks that depend on the given task.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// Validate checks for cycles and missing dependencies using a topological
// sort and populates the execution order.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		task, exists := g.tasks[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, ""), "dependency", u.String())
		}

		for _, dep := range task.Dependencies {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for name := range g.tasks {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(zerr.Wrap(ErrCycleDetected, ""), "cycle", cyclePath)
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}
