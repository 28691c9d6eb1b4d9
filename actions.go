package taskflow

import (
	"context"
	"fmt"

	"github.com/taskflow-dev/taskflow/board"
	"github.com/taskflow-dev/taskflow/docs"
	"github.com/taskflow-dev/taskflow/shell"
	"github.com/taskflow-dev/taskflow/vcs"
)

// ActionKind tags a single-shot action. The set is closed; an
// unrecognized tag fails with an UnknownAction error before any remote
// call.
type ActionKind string

// Action kinds.
const (
	ActionCreateBranch ActionKind = "create-branch"
	ActionListBranches ActionKind = "list-branches"
	ActionCreatePR     ActionKind = "create-pr"
	ActionListPRs      ActionKind = "list-prs"
	ActionGetFile      ActionKind = "get-file"
	ActionUpdateFile   ActionKind = "update-file"
	ActionCreateCard   ActionKind = "create-card"
	ActionUpdateCard   ActionKind = "update-card"
	ActionMoveCard     ActionKind = "move-card"
	ActionAddComment   ActionKind = "add-comment"
	ActionListBoards   ActionKind = "list-boards"
	ActionListLists    ActionKind = "list-lists"
	ActionListCards    ActionKind = "list-cards"
	ActionRunCommand   ActionKind = "run-command"
	ActionLookupDocs   ActionKind = "lookup-docs"
)

// Action is one directly invokable operation. Fields are read
// per-kind; unused fields are ignored.
type Action struct {
	Kind ActionKind

	// Version control fields.
	RepoName   string
	BranchName string
	BaseSHA    string
	PR         vcs.PullRequestOptions
	PRFilter   vcs.PullRequestFilter
	Path       string
	Ref        string
	FileChange vcs.FileChange

	// Task board fields.
	Card       board.CardOptions
	CardID     string
	CardFields board.CardFields
	ListID     string
	BoardID    string
	Comment    string

	// Command execution fields.
	Dir     string
	Command string
	Args    []string

	// Docs lookup field.
	Topic string
}

// Dispatcher executes single-shot actions against the same
// collaborators the orchestrator uses, plus the docs store and the
// command runner.
type Dispatcher struct {
	owner  string
	vcs    vcs.Adapter
	board  board.Adapter
	docs   *docs.Store
	runner shell.Runner
}

// NewDispatcher creates an action dispatcher. docs and runner may be
// nil when the corresponding actions are not needed.
func NewDispatcher(owner string, vcsAdapter vcs.Adapter, boardAdapter board.Adapter, store *docs.Store, runner shell.Runner) *Dispatcher {
	return &Dispatcher{
		owner:  owner,
		vcs:    vcsAdapter,
		board:  boardAdapter,
		docs:   store,
		runner: runner,
	}
}

// Execute runs one action and returns the adapter payload. Unknown
// tags are rejected with a typed error before any remote call.
func (d *Dispatcher) Execute(ctx context.Context, action Action) (any, error) {
	switch action.Kind {
	case ActionCreateBranch:
		return d.vcs.CreateBranch(ctx, d.owner, action.RepoName, action.BranchName, action.BaseSHA)

	case ActionListBranches:
		return d.vcs.ListBranches(ctx, d.owner, action.RepoName)

	case ActionCreatePR:
		return d.vcs.CreatePullRequest(ctx, d.owner, action.RepoName, action.PR)

	case ActionListPRs:
		return d.vcs.ListPullRequests(ctx, d.owner, action.RepoName, action.PRFilter)

	case ActionGetFile:
		return d.vcs.GetFile(ctx, d.owner, action.RepoName, action.Path, action.Ref)

	case ActionUpdateFile:
		return d.vcs.UpdateFile(ctx, d.owner, action.RepoName, action.Path, action.FileChange)

	case ActionCreateCard:
		return d.board.CreateCard(ctx, action.Card)

	case ActionUpdateCard:
		return d.board.UpdateCard(ctx, action.CardID, action.CardFields)

	case ActionMoveCard:
		return d.board.MoveCard(ctx, action.CardID, action.ListID)

	case ActionAddComment:
		return d.board.AddComment(ctx, action.CardID, action.Comment)

	case ActionListBoards:
		return d.board.ListBoards(ctx)

	case ActionListLists:
		return d.board.ListLists(ctx, action.BoardID)

	case ActionListCards:
		return d.board.ListCards(ctx, action.ListID)

	case ActionRunCommand:
		if d.runner == nil {
			return nil, &Error{Kind: AdapterError, Err: fmt.Errorf("no command runner configured")}
		}
		return d.runner.Run(action.Dir, action.Command, action.Args...)

	case ActionLookupDocs:
		if d.docs == nil {
			return nil, &Error{Kind: AdapterError, Err: fmt.Errorf("no docs store configured")}
		}
		entry, ok := d.docs.Lookup(action.Topic)
		if !ok {
			return nil, &Error{Kind: NotFound, Err: fmt.Errorf("docs topic %q not found", action.Topic)}
		}
		return entry, nil

	default:
		return nil, &Error{Kind: UnknownAction, Err: fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)}
	}
}
