package vcs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/taskflow-dev/taskflow/policy"
)

// GitHubAdapter implements Adapter for GitHub repositories.
type GitHubAdapter struct {
	client    *github.Client
	validator *policy.Validator
}

// GitHubOption configures GitHubAdapter.
type GitHubOption func(*GitHubAdapter)

// WithGitHubClient replaces the underlying API client (for tests
// against a local server).
func WithGitHubClient(client *github.Client) GitHubOption {
	return func(a *GitHubAdapter) { a.client = client }
}

// WithGitHubValidator replaces the naming policy validator.
func WithGitHubValidator(v *policy.Validator) GitHubOption {
	return func(a *GitHubAdapter) { a.validator = v }
}

// NewGitHubAdapter creates a GitHub adapter.
// token is a personal access token or GitHub App token.
func NewGitHubAdapter(token string, opts ...GitHubOption) (*GitHubAdapter, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	a := &GitHubAdapter{
		client:    github.NewClient(tc),
		validator: policy.NewValidator(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// CreateBranch implements Adapter. The branch name is validated against
// the naming policy before any remote call.
func (a *GitHubAdapter) CreateBranch(ctx context.Context, owner, repo, name, baseSHA string) (*BranchRef, error) {
	if verdict := a.validator.Validate(name); !verdict.Valid {
		return nil, &PolicyError{Verdict: verdict}
	}

	if baseSHA == "" {
		sha, err := a.defaultBranchHead(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		baseSHA = sha
	}

	ref := &github.Reference{
		Ref:    github.String("refs/heads/" + name),
		Object: &github.GitObject{SHA: github.String(baseSHA)},
	}

	created, resp, err := a.client.Git.CreateRef(ctx, owner, repo, ref)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity &&
			strings.Contains(err.Error(), "already exists") {
			return nil, ErrBranchExists
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("create branch: %w", err)
	}

	return &BranchRef{
		Name: name,
		SHA:  created.GetObject().GetSHA(),
		Repo: owner + "/" + repo,
		URL:  fmt.Sprintf("https://github.com/%s/%s/tree/%s", owner, repo, name),
	}, nil
}

// defaultBranchHead resolves the head SHA of the repository default branch.
func (a *GitHubAdapter) defaultBranchHead(ctx context.Context, owner, repo string) (string, error) {
	repository, resp, err := a.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", ErrRepoNotFound
		}
		return "", fmt.Errorf("get repository: %w", err)
	}

	ref, resp, err := a.client.Git.GetRef(ctx, owner, repo, "refs/heads/"+repository.GetDefaultBranch())
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", ErrBranchNotFound
		}
		return "", fmt.Errorf("get default branch ref: %w", err)
	}

	return ref.GetObject().GetSHA(), nil
}

// ListBranches implements Adapter.
func (a *GitHubAdapter) ListBranches(ctx context.Context, owner, repo string) ([]BranchRef, error) {
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var refs []BranchRef
	for {
		branches, resp, err := a.client.Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				return nil, ErrRepoNotFound
			}
			return nil, fmt.Errorf("list branches: %w", err)
		}

		for _, b := range branches {
			refs = append(refs, BranchRef{
				Name:      b.GetName(),
				SHA:       b.GetCommit().GetSHA(),
				Repo:      owner + "/" + repo,
				Protected: b.GetProtected(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

// CreatePullRequest implements Adapter.
func (a *GitHubAdapter) CreatePullRequest(ctx context.Context, owner, repo string, opts PullRequestOptions) (*PullRequest, error) {
	base := opts.Base
	if base == "" {
		base = "main"
	}

	newPR := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Body:  github.String(opts.Body),
		Base:  github.String(base),
		Head:  github.String(opts.Head),
		Draft: github.Bool(opts.Draft),
	}

	pr, resp, err := a.client.PullRequests.Create(ctx, owner, repo, newPR)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			if strings.Contains(err.Error(), "A pull request already exists") {
				return nil, ErrPRExists
			}
			if strings.Contains(err.Error(), "No commits between") {
				return nil, ErrNoChanges
			}
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("create PR: %w", err)
	}

	slog.Debug("pull request created", "repo", owner+"/"+repo, "number", pr.GetNumber())

	return prFromGitHub(pr), nil
}

// ListPullRequests implements Adapter.
func (a *GitHubAdapter) ListPullRequests(ctx context.Context, owner, repo string, filter PullRequestFilter) ([]*PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State: string(filter.State),
		Base:  filter.Base,
		Head:  filter.Head,
	}
	if opts.State == "" {
		opts.State = "open"
	}
	if filter.Limit > 0 {
		opts.PerPage = filter.Limit
	}

	prs, resp, err := a.client.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("list PRs: %w", err)
	}

	result := make([]*PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, prFromGitHub(pr))
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}

	return result, nil
}

// GetFile implements Adapter.
func (a *GitHubAdapter) GetFile(ctx context.Context, owner, repo, path, ref string) (*FileContent, error) {
	var getOpts *github.RepositoryContentGetOptions
	if ref != "" {
		getOpts = &github.RepositoryContentGetOptions{Ref: ref}
	}

	file, _, resp, err := a.client.Repositories.GetContents(ctx, owner, repo, path, getOpts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("get file: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("path %s is a directory, not a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode file content: %w", err)
	}

	return &FileContent{
		Path:    path,
		Ref:     ref,
		SHA:     file.GetSHA(),
		Content: content,
	}, nil
}

// UpdateFile implements Adapter.
func (a *GitHubAdapter) UpdateFile(ctx context.Context, owner, repo, path string, change FileChange) (*FileContent, error) {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(change.Message),
		Content: []byte(change.Content),
		SHA:     github.String(change.SHA),
	}
	if change.Branch != "" {
		opts.Branch = github.String(change.Branch)
	}

	updated, resp, err := a.client.Repositories.UpdateFile(ctx, owner, repo, path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		if resp != nil && resp.StatusCode == http.StatusConflict {
			return nil, fmt.Errorf("update file: stale SHA for %s: %w", path, err)
		}
		return nil, fmt.Errorf("update file: %w", err)
	}

	return &FileContent{
		Path:    path,
		Ref:     change.Branch,
		SHA:     updated.Content.GetSHA(),
		Content: change.Content,
	}, nil
}

// prFromGitHub converts a GitHub PR to our PullRequest type.
func prFromGitHub(pr *github.PullRequest) *PullRequest {
	state := State(pr.GetState())
	if pr.GetMerged() {
		state = StateMerged
	}

	return &PullRequest{
		Number:    pr.GetNumber(),
		URL:       pr.GetHTMLURL(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		State:     state,
		Draft:     pr.GetDraft(),
		Head:      pr.GetHead().GetRef(),
		Base:      pr.GetBase().GetRef(),
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
	}
}
