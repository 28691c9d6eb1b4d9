package vcs

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// State represents the state of a pull request.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
	StateMerged State = "merged"
)

// Adapter is the boundary to a version-control service.
// Implementations exist for GitHub and GitLab.
type Adapter interface {
	// CreateBranch creates a branch from baseSHA (or the repository
	// default branch head when baseSHA is empty). The branch name is
	// checked against the naming policy before any remote call; a
	// rejected name surfaces as *PolicyError.
	CreateBranch(ctx context.Context, owner, repo, name, baseSHA string) (*BranchRef, error)

	// ListBranches lists the repository's branches.
	ListBranches(ctx context.Context, owner, repo string) ([]BranchRef, error)

	// CreatePullRequest opens a pull request.
	CreatePullRequest(ctx context.Context, owner, repo string, opts PullRequestOptions) (*PullRequest, error)

	// ListPullRequests lists pull requests matching the filter.
	ListPullRequests(ctx context.Context, owner, repo string, filter PullRequestFilter) ([]*PullRequest, error)

	// GetFile fetches a file's content at a ref (empty ref means the
	// default branch).
	GetFile(ctx context.Context, owner, repo, path, ref string) (*FileContent, error)

	// UpdateFile commits new content for a file on a branch.
	UpdateFile(ctx context.Context, owner, repo, path string, change FileChange) (*FileContent, error)
}

// BranchRef identifies a created or listed branch.
type BranchRef struct {
	Name      string // Branch name (no refs/heads/ prefix)
	SHA       string // Commit SHA the branch points at
	Repo      string // "owner/repo"
	URL       string // Web URL, if the service provides one
	Protected bool
}

// PullRequestOptions configures pull request creation.
type PullRequestOptions struct {
	Title string // PR title (required)
	Body  string // PR description (markdown)
	Head  string // Source branch (required)
	Base  string // Target branch (default: "main")
	Draft bool   // Create as draft
}

// PullRequestFilter configures pull request listing.
type PullRequestFilter struct {
	State State  // Filter by state (empty = open)
	Base  string // Filter by base branch
	Head  string // Filter by head branch
	Limit int    // Maximum number to return (0 = service default)
}

// PullRequest represents a pull request.
type PullRequest struct {
	Number    int       // PR number/IID
	URL       string    // Web URL
	Title     string    // PR title
	Body      string    // PR description
	State     State     // Current state
	Draft     bool      // Whether it's a draft
	Head      string    // Source branch
	Base      string    // Target branch
	CreatedAt time.Time // Creation time
	UpdatedAt time.Time // Last update time
}

// FileContent is a file snapshot at a ref.
type FileContent struct {
	Path    string
	Ref     string // Branch or SHA the content was read at
	SHA     string // Blob/commit SHA of the content
	Content string // Decoded file content
}

// FileChange describes a file update commit.
type FileChange struct {
	Message string // Commit message (required)
	Content string // New file content
	SHA     string // Current blob SHA (required by GitHub for updates)
	Branch  string // Branch to commit to (default branch when empty)
}

// ParseRepoFromURL extracts owner and repo from a git remote URL.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	// SSH URLs: git@github.com:owner/repo.git
	if strings.HasPrefix(remoteURL, "git@") {
		parts := strings.Split(remoteURL, ":")
		if len(parts) != 2 {
			return "", "", fmt.Errorf("invalid SSH URL format")
		}
		path := strings.TrimSuffix(parts[1], ".git")
		pathParts := strings.Split(path, "/")
		if len(pathParts) != 2 {
			return "", "", fmt.Errorf("invalid repository path")
		}
		return pathParts[0], pathParts[1], nil
	}

	// HTTPS URLs: https://github.com/owner/repo.git
	remoteURL = strings.TrimPrefix(remoteURL, "https://")
	remoteURL = strings.TrimPrefix(remoteURL, "http://")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	parts := strings.Split(remoteURL, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("invalid URL format")
	}

	return parts[len(parts)-2], parts[len(parts)-1], nil
}
