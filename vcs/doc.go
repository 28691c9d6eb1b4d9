// Package vcs provides version-control service adapters for branch,
// pull-request, and repository-file operations.
//
// Core types:
//   - Adapter: Interface over the version-control operations the
//     workflows need (branches, pull requests, file content)
//   - BranchRef, PullRequest, FileContent: Normalized result types
//   - PolicyError: Branch name rejected by the naming policy
//
// Implementations:
//   - GitHubAdapter: GitHub via go-github
//   - GitLabAdapter: GitLab via go-gitlab
//   - MockAdapter: Configurable mock for tests
//
// CreateBranch validates the proposed name against policy.Validator
// before issuing any remote call, so a policy-rejected name never
// reaches the service.
package vcs
