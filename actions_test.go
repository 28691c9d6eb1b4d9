package taskflow

import (
	"context"
	"errors"
	"testing"

	"github.com/taskflow-dev/taskflow/board"
	"github.com/taskflow-dev/taskflow/docs"
	"github.com/taskflow-dev/taskflow/shell"
	"github.com/taskflow-dev/taskflow/vcs"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()

	store, err := docs.Load()
	if err != nil {
		t.Fatalf("docs.Load() error = %v", err)
	}

	runner := shell.NewMockRunner()
	runner.Responses["echo"] = "hello"

	return NewDispatcher("acme", &vcs.MockAdapter{}, &board.MockAdapter{}, store, runner)
}

func TestDispatcherCreateBranch(t *testing.T) {
	d := newTestDispatcher(t)

	result, err := d.Execute(context.Background(), Action{
		Kind:       ActionCreateBranch,
		RepoName:   "api",
		BranchName: "feature/login",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	ref, ok := result.(*vcs.BranchRef)
	if !ok {
		t.Fatalf("result type = %T, want *vcs.BranchRef", result)
	}
	if ref.Name != "feature/login" {
		t.Errorf("branch = %q, want feature/login", ref.Name)
	}
}

func TestDispatcherAddComment(t *testing.T) {
	d := newTestDispatcher(t)

	result, err := d.Execute(context.Background(), Action{
		Kind:    ActionAddComment,
		CardID:  "card-1",
		Comment: "done",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	comment, ok := result.(*board.Comment)
	if !ok {
		t.Fatalf("result type = %T, want *board.Comment", result)
	}
	if comment.CardID != "card-1" || comment.Text != "done" {
		t.Errorf("unexpected comment: %+v", comment)
	}
}

func TestDispatcherRunCommand(t *testing.T) {
	d := newTestDispatcher(t)

	result, err := d.Execute(context.Background(), Action{
		Kind:    ActionRunCommand,
		Command: "echo",
		Args:    []string{"hello"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "hello" {
		t.Errorf("output = %v, want hello", result)
	}
}

func TestDispatcherLookupDocs(t *testing.T) {
	d := newTestDispatcher(t)

	result, err := d.Execute(context.Background(), Action{
		Kind:  ActionLookupDocs,
		Topic: "branch-naming",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	entry, ok := result.(docs.Entry)
	if !ok {
		t.Fatalf("result type = %T, want docs.Entry", result)
	}
	if entry.Topic != "branch-naming" {
		t.Errorf("topic = %q, want branch-naming", entry.Topic)
	}
}

func TestDispatcherLookupDocsMissingTopic(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Execute(context.Background(), Action{
		Kind:  ActionLookupDocs,
		Topic: "no-such-topic",
	})

	var werr *Error
	if !errors.As(err, &werr) || werr.Kind != NotFound {
		t.Errorf("Execute() error = %v, want NotFound kind", err)
	}
}

func TestDispatcherUnknownAction(t *testing.T) {
	vcsMock := &vcs.MockAdapter{
		CreateBranchFunc: func(ctx context.Context, owner, repo, name, baseSHA string) (*vcs.BranchRef, error) {
			t.Error("remote call attempted for unknown action")
			return nil, nil
		},
	}
	d := NewDispatcher("acme", vcsMock, &board.MockAdapter{}, nil, nil)

	_, err := d.Execute(context.Background(), Action{Kind: ActionKind("teleport")})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("Execute() error = %v, want ErrUnknownAction", err)
	}

	var werr *Error
	if !errors.As(err, &werr) || werr.Kind != UnknownAction {
		t.Errorf("error kind = %v, want unknown_action", err)
	}
}
