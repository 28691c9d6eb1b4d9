package vcs

import (
	"errors"

	"github.com/taskflow-dev/taskflow/policy"
)

// Version-control adapter errors.
var (
	// ErrBranchExists indicates the branch already exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound indicates the base branch or ref does not exist.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrRepoNotFound indicates the repository does not exist.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrFileNotFound indicates the file does not exist at the ref.
	ErrFileNotFound = errors.New("file not found")

	// ErrPRExists indicates a PR already exists for the branch.
	ErrPRExists = errors.New("pull request already exists for this branch")

	// ErrNoChanges indicates there are no changes between branches.
	ErrNoChanges = errors.New("no changes between branches")
)

// PolicyError reports a branch name rejected by the naming policy.
// It is raised before any remote call and is never retried.
type PolicyError struct {
	Verdict policy.Verdict
}

// Error implements the error interface.
func (e *PolicyError) Error() string {
	return "branch name rejected by policy: " + e.Verdict.Explanation
}

// IsPolicyViolation reports whether the error is a policy rejection.
func IsPolicyViolation(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}
