package domain

import "time"

// BuildInfo records what a task last produced. The input hash covers the
// task definition, tool configuration, and input file contents, so a flag or
// version change invalidates outputs even when no file timestamp moved.
type BuildInfo struct {
	TaskName   string    `json:"task_name,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
