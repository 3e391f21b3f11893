package ports

import "time"

// TaskStatus is the terminal state of a task as shown to the user.
type TaskStatus string

const (
	// StatusBuilt indicates the task ran its tool and wrote its output.
	StatusBuilt TaskStatus = "built"
	// StatusUpToDate indicates the task was skipped as fresh.
	StatusUpToDate TaskStatus = "up-to-date"
	// StatusFailed indicates the task failed.
	StatusFailed TaskStatus = "failed"
)

// Renderer receives task lifecycle events and presents build progress.
type Renderer interface {
	// OnTaskStart is called when a task span begins.
	OnTaskStart(spanID, name string, startTime time.Time)
	// OnTaskComplete is called when a task span ends.
	OnTaskComplete(spanID, name string, status TaskStatus, endTime time.Time, err error)
}
