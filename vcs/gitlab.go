package vcs

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/xanzy/go-gitlab"

	"github.com/taskflow-dev/taskflow/policy"
)

// GitLabAdapter implements Adapter for GitLab projects.
// Owner/repo pairs are mapped to "namespace/project" paths.
type GitLabAdapter struct {
	client    *gitlab.Client
	validator *policy.Validator
}

// GitLabOption configures GitLabAdapter.
type GitLabOption func(*GitLabAdapter)

// WithGitLabValidator replaces the naming policy validator.
func WithGitLabValidator(v *policy.Validator) GitLabOption {
	return func(a *GitLabAdapter) { a.validator = v }
}

// NewGitLabAdapter creates a GitLab adapter.
// token is a personal access token; baseURL is the instance URL
// (empty for gitlab.com).
func NewGitLabAdapter(token, baseURL string, opts ...GitLabOption) (*GitLabAdapter, error) {
	if token == "" {
		return nil, fmt.Errorf("GitLab token is required")
	}

	var client *gitlab.Client
	var err error
	if baseURL != "" {
		client, err = gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	} else {
		client, err = gitlab.NewClient(token)
	}
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	a := &GitLabAdapter{
		client:    client,
		validator: policy.NewValidator(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

func projectID(owner, repo string) string {
	return owner + "/" + repo
}

// CreateBranch implements Adapter. The branch name is validated against
// the naming policy before any remote call.
func (a *GitLabAdapter) CreateBranch(ctx context.Context, owner, repo, name, baseSHA string) (*BranchRef, error) {
	if verdict := a.validator.Validate(name); !verdict.Valid {
		return nil, &PolicyError{Verdict: verdict}
	}

	pid := projectID(owner, repo)

	ref := baseSHA
	if ref == "" {
		project, resp, err := a.client.Projects.GetProject(pid, nil, gitlab.WithContext(ctx))
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				return nil, ErrRepoNotFound
			}
			return nil, fmt.Errorf("get project: %w", err)
		}
		ref = project.DefaultBranch
	}

	branch, resp, err := a.client.Branches.CreateBranch(pid, &gitlab.CreateBranchOptions{
		Branch: gitlab.Ptr(name),
		Ref:    gitlab.Ptr(ref),
	}, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusBadRequest {
			return nil, ErrBranchExists
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("create branch: %w", err)
	}

	result := &BranchRef{
		Name:      branch.Name,
		Repo:      pid,
		URL:       branch.WebURL,
		Protected: branch.Protected,
	}
	if branch.Commit != nil {
		result.SHA = branch.Commit.ID
	}
	return result, nil
}

// ListBranches implements Adapter.
func (a *GitLabAdapter) ListBranches(ctx context.Context, owner, repo string) ([]BranchRef, error) {
	pid := projectID(owner, repo)
	opts := &gitlab.ListBranchesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}

	var refs []BranchRef
	for {
		branches, resp, err := a.client.Branches.ListBranches(pid, opts, gitlab.WithContext(ctx))
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				return nil, ErrRepoNotFound
			}
			return nil, fmt.Errorf("list branches: %w", err)
		}

		for _, b := range branches {
			ref := BranchRef{
				Name:      b.Name,
				Repo:      pid,
				URL:       b.WebURL,
				Protected: b.Protected,
			}
			if b.Commit != nil {
				ref.SHA = b.Commit.ID
			}
			refs = append(refs, ref)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

// CreatePullRequest implements Adapter by opening a merge request.
func (a *GitLabAdapter) CreatePullRequest(ctx context.Context, owner, repo string, opts PullRequestOptions) (*PullRequest, error) {
	targetBranch := opts.Base
	if targetBranch == "" {
		targetBranch = "main"
	}

	title := opts.Title
	if opts.Draft {
		// GitLab marks drafts through the title.
		title = "Draft: " + title
	}

	mrOpts := &gitlab.CreateMergeRequestOptions{
		Title:        gitlab.Ptr(title),
		Description:  gitlab.Ptr(opts.Body),
		SourceBranch: gitlab.Ptr(opts.Head),
		TargetBranch: gitlab.Ptr(targetBranch),
	}

	mr, resp, err := a.client.MergeRequests.CreateMergeRequest(projectID(owner, repo), mrOpts, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusConflict {
			return nil, ErrPRExists
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("create MR: %w", err)
	}

	return prFromGitLab(mr), nil
}

// ListPullRequests implements Adapter.
func (a *GitLabAdapter) ListPullRequests(ctx context.Context, owner, repo string, filter PullRequestFilter) ([]*PullRequest, error) {
	opts := &gitlab.ListProjectMergeRequestsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}
	switch filter.State {
	case StateOpen, "":
		opts.State = gitlab.Ptr("opened")
	case StateClosed:
		opts.State = gitlab.Ptr("closed")
	case StateMerged:
		opts.State = gitlab.Ptr("merged")
	}
	if filter.Base != "" {
		opts.TargetBranch = gitlab.Ptr(filter.Base)
	}
	if filter.Head != "" {
		opts.SourceBranch = gitlab.Ptr(filter.Head)
	}
	if filter.Limit > 0 {
		opts.PerPage = filter.Limit
	}

	mrs, resp, err := a.client.MergeRequests.ListProjectMergeRequests(projectID(owner, repo), opts, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("list MRs: %w", err)
	}

	result := make([]*PullRequest, 0, len(mrs))
	for _, mr := range mrs {
		result = append(result, prFromGitLab(mr))
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}

	return result, nil
}

// GetFile implements Adapter.
func (a *GitLabAdapter) GetFile(ctx context.Context, owner, repo, path, ref string) (*FileContent, error) {
	opts := &gitlab.GetFileOptions{}
	if ref != "" {
		opts.Ref = gitlab.Ptr(ref)
	}

	file, resp, err := a.client.RepositoryFiles.GetFile(projectID(owner, repo), path, opts, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	content := file.Content
	if file.Encoding == "base64" {
		decoded, decodeErr := base64.StdEncoding.DecodeString(file.Content)
		if decodeErr != nil {
			return nil, fmt.Errorf("decode file content: %w", decodeErr)
		}
		content = string(decoded)
	}

	return &FileContent{
		Path:    path,
		Ref:     file.Ref,
		SHA:     file.BlobID,
		Content: content,
	}, nil
}

// UpdateFile implements Adapter.
func (a *GitLabAdapter) UpdateFile(ctx context.Context, owner, repo, path string, change FileChange) (*FileContent, error) {
	opts := &gitlab.UpdateFileOptions{
		Content:       gitlab.Ptr(change.Content),
		CommitMessage: gitlab.Ptr(change.Message),
	}
	if change.Branch != "" {
		opts.Branch = gitlab.Ptr(change.Branch)
	}

	info, resp, err := a.client.RepositoryFiles.UpdateFile(projectID(owner, repo), path, opts, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("update file: %w", err)
	}

	return &FileContent{
		Path:    info.FilePath,
		Ref:     info.Branch,
		Content: change.Content,
	}, nil
}

// prFromGitLab converts a GitLab MR to our PullRequest type.
func prFromGitLab(mr *gitlab.MergeRequest) *PullRequest {
	var state State
	switch mr.State {
	case "opened":
		state = StateOpen
	case "merged":
		state = StateMerged
	default:
		state = StateClosed
	}

	pr := &PullRequest{
		Number: mr.IID,
		URL:    mr.WebURL,
		Title:  mr.Title,
		Body:   mr.Description,
		State:  state,
		Head:   mr.SourceBranch,
		Base:   mr.TargetBranch,
	}
	// GitLab marks drafts through the title.
	pr.Draft = strings.HasPrefix(mr.Title, "Draft:") || strings.HasPrefix(mr.Title, "WIP:")
	if mr.CreatedAt != nil {
		pr.CreatedAt = *mr.CreatedAt
	}
	if mr.UpdatedAt != nil {
		pr.UpdatedAt = *mr.UpdatedAt
	}
	return pr
}
