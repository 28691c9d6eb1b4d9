package vcs

import (
	"context"

	"github.com/taskflow-dev/taskflow/policy"
)

// MockAdapter is a mock implementation of Adapter for testing.
// When Validator is set, CreateBranch applies the naming policy before
// delegating, matching the production adapters.
type MockAdapter struct {
	Validator *policy.Validator

	CreateBranchFunc      func(ctx context.Context, owner, repo, name, baseSHA string) (*BranchRef, error)
	ListBranchesFunc      func(ctx context.Context, owner, repo string) ([]BranchRef, error)
	CreatePullRequestFunc func(ctx context.Context, owner, repo string, opts PullRequestOptions) (*PullRequest, error)
	ListPullRequestsFunc  func(ctx context.Context, owner, repo string, filter PullRequestFilter) ([]*PullRequest, error)
	GetFileFunc           func(ctx context.Context, owner, repo, path, ref string) (*FileContent, error)
	UpdateFileFunc        func(ctx context.Context, owner, repo, path string, change FileChange) (*FileContent, error)
}

// CreateBranch implements Adapter.
func (m *MockAdapter) CreateBranch(ctx context.Context, owner, repo, name, baseSHA string) (*BranchRef, error) {
	if m.Validator != nil {
		if verdict := m.Validator.Validate(name); !verdict.Valid {
			return nil, &PolicyError{Verdict: verdict}
		}
	}
	if m.CreateBranchFunc != nil {
		return m.CreateBranchFunc(ctx, owner, repo, name, baseSHA)
	}
	return &BranchRef{Name: name, SHA: "abc123", Repo: owner + "/" + repo}, nil
}

// ListBranches implements Adapter.
func (m *MockAdapter) ListBranches(ctx context.Context, owner, repo string) ([]BranchRef, error) {
	if m.ListBranchesFunc != nil {
		return m.ListBranchesFunc(ctx, owner, repo)
	}
	return []BranchRef{}, nil
}

// CreatePullRequest implements Adapter.
func (m *MockAdapter) CreatePullRequest(ctx context.Context, owner, repo string, opts PullRequestOptions) (*PullRequest, error) {
	if m.CreatePullRequestFunc != nil {
		return m.CreatePullRequestFunc(ctx, owner, repo, opts)
	}
	return &PullRequest{
		Number: 1,
		URL:    "https://example.com/" + owner + "/" + repo + "/pull/1",
		Title:  opts.Title,
		State:  StateOpen,
		Head:   opts.Head,
		Base:   opts.Base,
	}, nil
}

// ListPullRequests implements Adapter.
func (m *MockAdapter) ListPullRequests(ctx context.Context, owner, repo string, filter PullRequestFilter) ([]*PullRequest, error) {
	if m.ListPullRequestsFunc != nil {
		return m.ListPullRequestsFunc(ctx, owner, repo, filter)
	}
	return []*PullRequest{}, nil
}

// GetFile implements Adapter.
func (m *MockAdapter) GetFile(ctx context.Context, owner, repo, path, ref string) (*FileContent, error) {
	if m.GetFileFunc != nil {
		return m.GetFileFunc(ctx, owner, repo, path, ref)
	}
	return &FileContent{Path: path, Ref: ref}, nil
}

// UpdateFile implements Adapter.
func (m *MockAdapter) UpdateFile(ctx context.Context, owner, repo, path string, change FileChange) (*FileContent, error) {
	if m.UpdateFileFunc != nil {
		return m.UpdateFileFunc(ctx, owner, repo, path, change)
	}
	return &FileContent{Path: path, Ref: change.Branch, Content: change.Content}, nil
}
