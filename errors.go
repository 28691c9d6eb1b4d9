package taskflow

import (
	"errors"

	"github.com/taskflow-dev/taskflow/board"
	taskhttp "github.com/taskflow-dev/taskflow/http"
	"github.com/taskflow-dev/taskflow/vcs"
)

// ErrorKind classifies a workflow or dispatch failure.
type ErrorKind string

// Error kinds.
const (
	// PolicyViolation indicates a proposed branch name failed a policy
	// rule. Never retried.
	PolicyViolation ErrorKind = "policy_violation"

	// NotFound indicates a referenced repository, card, list, or file
	// does not exist upstream.
	NotFound ErrorKind = "not_found"

	// AdapterError covers any other remote-call failure (network,
	// malformed response, permission).
	AdapterError ErrorKind = "adapter_error"

	// UnknownAction indicates an unrecognized action tag at a dispatch
	// point. Fails before any remote call.
	UnknownAction ErrorKind = "unknown_action"

	// UnknownWorkflow indicates an unrecognized workflow kind. Fails
	// before any remote call.
	UnknownWorkflow ErrorKind = "unknown_workflow"

	// MissingParam indicates a required workflow parameter was absent.
	// Fails before any remote call.
	MissingParam ErrorKind = "missing_param"
)

// Dispatch errors.
var (
	// ErrUnknownWorkflow indicates the workflow kind is not one of
	// TaskCreation, ReviewTransition, or Completion.
	ErrUnknownWorkflow = errors.New("unknown workflow kind")

	// ErrUnknownAction indicates the action tag is not recognized.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingParam indicates a required parameter was not supplied.
	ErrMissingParam = errors.New("missing required parameter")
)

// Error is a structured workflow failure. It preserves the original
// cause for errors.Is/As while carrying the classification the
// reporter renders.
type Error struct {
	Kind ErrorKind
	Step string // workflow step that failed, if any
	Err  error  // underlying cause
}

func (e *Error) Error() string {
	if e.Step != "" {
		return "step " + e.Step + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify maps an adapter failure onto the error taxonomy. Policy
// rejections and upstream not-found conditions stay distinguishable;
// everything else is an AdapterError.
func Classify(err error) ErrorKind {
	switch {
	case vcs.IsPolicyViolation(err):
		return PolicyViolation
	case errors.Is(err, vcs.ErrRepoNotFound),
		errors.Is(err, vcs.ErrBranchNotFound),
		errors.Is(err, vcs.ErrFileNotFound),
		errors.Is(err, board.ErrCardNotFound),
		errors.Is(err, board.ErrListNotFound),
		errors.Is(err, board.ErrBoardNotFound),
		taskhttp.IsNotFound(err):
		return NotFound
	case errors.Is(err, ErrUnknownWorkflow):
		return UnknownWorkflow
	case errors.Is(err, ErrUnknownAction):
		return UnknownAction
	case errors.Is(err, ErrMissingParam):
		return MissingParam
	default:
		return AdapterError
	}
}

// stepError wraps a step failure with its classification.
func stepError(step string, err error) *Error {
	return &Error{Kind: Classify(err), Step: step, Err: err}
}
