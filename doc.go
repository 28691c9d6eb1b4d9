// Package taskflow automates a developer task lifecycle: branch
// creation, pull request creation, and task board card updates,
// sequenced as fixed workflows across two independent services.
//
// The Orchestrator drives three workflows:
//
//   - TaskCreation: create a branch (policy checked), then a tracking card
//   - ReviewTransition: create a PR, optionally move and comment a card
//   - Completion: close a card and post a closing comment
//
// Steps run strictly sequentially. The first failure aborts the run
// with no compensation: a branch or card created by an earlier step
// stays in place. Run never returns an error; every failure is
// reported through the Outcome value, with a ledger of the steps that
// completed.
//
// The package is organized into subpackages by domain:
//
//   - policy: branch naming policy rules and validation
//   - vcs: version control adapters (GitHub, GitLab)
//   - board: task board adapter (Trello) and webhooks
//   - docs: immutable knowledge lookup store
//   - shell: local command execution
//   - notify: notification services (Slack, webhook, log)
//   - config: hierarchical configuration
//   - http: shared HTTP client helpers
//
// Example:
//
//	gh, _ := vcs.NewGitHubAdapter(token)
//	trello, _ := board.NewTrelloAdapter(key, token)
//	orch := taskflow.NewOrchestrator("my-org", gh, trello)
//
//	outcome := orch.Run(ctx, taskflow.TaskCreation, taskflow.Params{
//	    RepoName:        "api",
//	    BranchName:      "feature/login",
//	    TaskTitle:       "Implement login",
//	    TaskDescription: "Add the login form and session handling",
//	    ListID:          todoListID,
//	})
//	fmt.Print(taskflow.Reporter{}.Render(outcome))
package taskflow
