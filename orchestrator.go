package taskflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	"github.com/taskflow-dev/taskflow/board"
	"github.com/taskflow-dev/taskflow/notify"
	"github.com/taskflow-dev/taskflow/vcs"
)

// runData carries artifacts produced by earlier steps to later ones
// (branch ref into the card description, PR link into the comment).
type runData struct {
	Branch *vcs.BranchRef
	Card   *board.Card
	PR     *vcs.PullRequest
}

// step describes one workflow action before execution.
type step struct {
	name    string
	service Service
	// artifact, when set, names the creation event announced after the
	// step succeeds (branch_created, card_created, pr_created).
	artifact notify.EventType
	invoke   func(ctx context.Context, data runData) (runData, any, error)
}

// recorder accumulates the ledger across step nodes. Nodes hold a
// pointer to it so successful steps stay recorded even when a later
// step aborts the graph run.
type recorder struct {
	steps []StepResult
	err   *Error
}

// Orchestrator drives the fixed workflows against a version control
// adapter and a task board adapter. Steps run strictly sequentially;
// the first failure aborts the remainder with no compensation of
// already-completed steps.
type Orchestrator struct {
	owner      string
	vcs        vcs.Adapter
	board      board.Adapter
	baseBranch string
	logger     *slog.Logger
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithBaseBranch sets the base branch for pull requests (default "main").
func WithBaseBranch(branch string) Option {
	return func(o *Orchestrator) {
		o.baseBranch = branch
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an orchestrator operating on repositories
// owned by the given owner (user or organization).
func NewOrchestrator(owner string, vcsAdapter vcs.Adapter, boardAdapter board.Adapter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		owner:      owner,
		vcs:        vcsAdapter,
		board:      boardAdapter,
		baseBranch: "main",
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one workflow and returns its Outcome. It never returns
// an error: failures are reported through the Outcome. Cancelling ctx
// abandons the run after the in-flight adapter call; steps already
// completed stay recorded and are not rolled back.
func (o *Orchestrator) Run(ctx context.Context, kind Kind, params Params) Outcome {
	outcome := Outcome{
		RunID:   newRunID(),
		Kind:    kind,
		State:   StatePending,
		Started: time.Now(),
	}
	notifier := notify.NotifierFromContext(ctx)

	if err := validateParams(kind, params); err != nil {
		outcome.State = StateAborted
		outcome.Message = err.Error()
		outcome.Finished = time.Now()
		o.logger.Warn("workflow rejected",
			"run_id", outcome.RunID,
			"workflow", string(kind),
			"error", err)
		o.emit(ctx, notifier, notify.Event{
			Type:     notify.EventRunAborted,
			RunID:    outcome.RunID,
			Workflow: string(kind),
			Message:  err.Error(),
			Severity: notify.SeverityError,
		})
		return outcome
	}

	steps := o.steps(kind, params)
	rec := &recorder{}

	o.logger.Debug("workflow started",
		"run_id", outcome.RunID,
		"workflow", string(kind),
		"steps", len(steps))
	o.emit(ctx, notifier, notify.Event{
		Type:     notify.EventRunStarted,
		RunID:    outcome.RunID,
		Workflow: string(kind),
		Message:  fmt.Sprintf("%s started", kind),
	})

	outcome.State = StateRunning
	err := o.execute(ctx, steps, rec, notifier, outcome.RunID, kind)

	outcome.Steps = rec.steps
	outcome.Finished = time.Now()

	if err != nil {
		outcome.State = StateAborted
		if rec.err != nil {
			outcome.Message = rec.err.Error()
		} else {
			outcome.Message = err.Error()
		}
		o.emit(ctx, notifier, notify.Event{
			Type:     notify.EventRunAborted,
			RunID:    outcome.RunID,
			Workflow: string(kind),
			Message:  outcome.Message,
			Severity: notify.SeverityError,
		})
		return outcome
	}

	outcome.State = StateCompleted
	outcome.Success = true
	outcome.Message = fmt.Sprintf("%s completed (%d steps)", kind, len(rec.steps))
	o.emit(ctx, notifier, notify.Event{
		Type:     notify.EventRunCompleted,
		RunID:    outcome.RunID,
		Workflow: string(kind),
		Message:  outcome.Message,
	})
	return outcome
}

// execute compiles the step sequence into a linear flowgraph and runs
// it. The recorder captures the ledger; the graph's returned state is
// not consulted on the error path.
func (o *Orchestrator) execute(ctx context.Context, steps []step, rec *recorder, notifier notify.Notifier, runID string, kind Kind) error {
	graph := flowgraph.NewGraph[runData]()
	for _, s := range steps {
		graph.AddNode(s.name, o.node(s, rec, notifier, runID, kind))
	}
	for i := 0; i < len(steps)-1; i++ {
		graph.AddEdge(steps[i].name, steps[i+1].name)
	}
	graph.AddEdge(steps[len(steps)-1].name, flowgraph.END)
	graph.SetEntry(steps[0].name)

	compiled, err := graph.Compile()
	if err != nil {
		return fmt.Errorf("compile workflow graph: %w", err)
	}

	_, err = compiled.Run(flowgraph.NewContext(ctx), runData{})
	return err
}

// node wraps a step as a flowgraph node that records success into the
// ledger and classifies failure.
func (o *Orchestrator) node(s step, rec *recorder, notifier notify.Notifier, runID string, kind Kind) flowgraph.NodeFunc[runData] {
	return func(ctx flowgraph.Context, data runData) (runData, error) {
		next, payload, err := s.invoke(ctx, data)
		if err != nil {
			werr := stepError(s.name, err)
			rec.err = werr
			o.logger.Warn("workflow step failed",
				"run_id", runID,
				"workflow", string(kind),
				"step", s.name,
				"error", err)
			o.emit(ctx, notifier, notify.Event{
				Type:     notify.EventStepFailed,
				RunID:    runID,
				Workflow: string(kind),
				Step:     s.name,
				Message:  werr.Error(),
				Severity: notify.SeverityError,
			})
			return data, werr
		}

		rec.steps = append(rec.steps, StepResult{Name: s.name, Service: s.service, Payload: payload})
		o.logger.Debug("workflow step completed",
			"run_id", runID,
			"workflow", string(kind),
			"step", s.name)
		o.emit(ctx, notifier, notify.Event{
			Type:     notify.EventStepCompleted,
			RunID:    runID,
			Workflow: string(kind),
			Step:     s.name,
			Message:  s.name + " completed",
		})
		if s.artifact != "" {
			o.emit(ctx, notifier, notify.Event{
				Type:     s.artifact,
				RunID:    runID,
				Workflow: string(kind),
				Step:     s.name,
				Message:  artifactMessage(s.artifact, next),
			})
		}
		return next, nil
	}
}

// artifactMessage describes the artifact a creation step produced.
func artifactMessage(t notify.EventType, data runData) string {
	switch t {
	case notify.EventBranchCreated:
		return fmt.Sprintf("branch %s created", data.Branch.Name)
	case notify.EventCardCreated:
		return fmt.Sprintf("card %s created", data.Card.ID)
	case notify.EventPRCreated:
		return fmt.Sprintf("pull request #%d created", data.PR.Number)
	default:
		return ""
	}
}

// steps builds the fixed step sequence for a kind. validateParams has
// already accepted the kind, so the switch is exhaustive here.
func (o *Orchestrator) steps(kind Kind, p Params) []step {
	switch kind {
	case TaskCreation:
		return []step{
			{
				name:     "create-branch",
				service:  ServiceVersionControl,
				artifact: notify.EventBranchCreated,
				invoke: func(ctx context.Context, data runData) (runData, any, error) {
					ref, err := o.vcs.CreateBranch(ctx, o.owner, p.RepoName, p.BranchName, "")
					if err != nil {
						return data, nil, err
					}
					data.Branch = ref
					return data, ref, nil
				},
			},
			{
				name:     "create-card",
				service:  ServiceTaskBoard,
				artifact: notify.EventCardCreated,
				invoke: func(ctx context.Context, data runData) (runData, any, error) {
					desc := fmt.Sprintf("%s\n\nBranch: %s\nRepository: %s/%s",
						p.TaskDescription, data.Branch.Name, o.owner, p.RepoName)
					card, err := o.board.CreateCard(ctx, board.CardOptions{
						ListID: p.ListID,
						Name:   p.TaskTitle,
						Desc:   desc,
					})
					if err != nil {
						return data, nil, err
					}
					data.Card = card
					return data, card, nil
				},
			},
		}

	case ReviewTransition:
		steps := []step{
			{
				name:     "create-pr",
				service:  ServiceVersionControl,
				artifact: notify.EventPRCreated,
				invoke: func(ctx context.Context, data runData) (runData, any, error) {
					pr, err := o.vcs.CreatePullRequest(ctx, o.owner, p.RepoName, vcs.PullRequestOptions{
						Title: p.PRTitle,
						Body:  fmt.Sprintf("Changes from branch `%s`.", p.BranchName),
						Head:  p.BranchName,
						Base:  o.baseBranch,
					})
					if err != nil {
						return data, nil, err
					}
					data.PR = pr
					return data, pr, nil
				},
			},
		}

		// The move and comment steps are scheduled only when both the
		// card and the review list are supplied.
		if p.wantsCardMove() {
			steps = append(steps,
				step{
					name:    "move-card",
					service: ServiceTaskBoard,
					invoke: func(ctx context.Context, data runData) (runData, any, error) {
						card, err := o.board.MoveCard(ctx, p.CardID, p.ReviewListID)
						if err != nil {
							return data, nil, err
						}
						data.Card = card
						return data, card, nil
					},
				},
				step{
					name:    "comment-card",
					service: ServiceTaskBoard,
					invoke: func(ctx context.Context, data runData) (runData, any, error) {
						text := fmt.Sprintf("Ready for review: %s", data.PR.URL)
						comment, err := o.board.AddComment(ctx, p.CardID, text)
						if err != nil {
							return data, nil, err
						}
						return data, comment, nil
					},
				},
			)
		}
		return steps

	case Completion:
		return []step{
			{
				name:    "close-card",
				service: ServiceTaskBoard,
				invoke: func(ctx context.Context, data runData) (runData, any, error) {
					closed := true
					card, err := o.board.UpdateCard(ctx, p.CardID, board.CardFields{Closed: &closed})
					if err != nil {
						return data, nil, err
					}
					data.Card = card
					return data, card, nil
				},
			},
			{
				name:    "comment-card",
				service: ServiceTaskBoard,
				invoke: func(ctx context.Context, data runData) (runData, any, error) {
					text := fmt.Sprintf("Completed work on %s/%s (branch %s).",
						o.owner, p.RepoName, p.BranchName)
					comment, err := o.board.AddComment(ctx, p.CardID, text)
					if err != nil {
						return data, nil, err
					}
					return data, comment, nil
				},
			},
		}

	default:
		return nil
	}
}

// emit sends a notification when a notifier is present. Notification
// failures never affect the run.
func (o *Orchestrator) emit(ctx context.Context, n notify.Notifier, event notify.Event) {
	if n == nil {
		return
	}
	event.Timestamp = time.Now()
	if event.Severity == "" {
		event.Severity = notify.SeverityInfo
	}
	if err := n.Notify(ctx, event); err != nil {
		o.logger.Warn("notification failed", "error", err, "event_type", event.Type)
	}
}

func newRunID() string {
	id, err := nanoid.New()
	if err != nil {
		return fmt.Sprintf("run_%d", time.Now().UnixNano())
	}
	return "run_" + id
}
