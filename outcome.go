package taskflow

import "time"

// Service tags the external service a step ran against.
type Service string

// Service tags.
const (
	ServiceVersionControl Service = "version-control"
	ServiceTaskBoard      Service = "task-board"
)

// RunState tracks a workflow run through its lifecycle.
// Pending -> Running -> {Completed | Aborted}.
type RunState string

// Run states.
const (
	StatePending   RunState = "pending"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateAborted   RunState = "aborted"
)

// StepResult records one successfully executed workflow step. Failed
// or skipped steps never produce a StepResult.
type StepResult struct {
	Name    string
	Service Service
	Payload any // adapter success payload: branch ref, PR, card, comment
}

// Outcome is the aggregated result of one workflow run. It is created
// fresh per run and owned by the caller after return; the orchestrator
// retains no reference.
type Outcome struct {
	RunID    string
	Kind     Kind
	State    RunState
	Success  bool
	Message  string
	Steps    []StepResult
	Started  time.Time
	Finished time.Time
}
