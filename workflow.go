package taskflow

import "fmt"

// Kind names one of the fixed workflows. The set is closed: anything
// else is rejected with an UnknownWorkflow error before any remote
// call.
type Kind string

// Workflow kinds.
const (
	// TaskCreation creates a branch and a tracking card.
	TaskCreation Kind = "task-creation"

	// ReviewTransition creates a pull request and, when a card and a
	// review list are supplied, moves the card and comments on it.
	ReviewTransition Kind = "review-transition"

	// Completion closes a card and posts a closing comment.
	Completion Kind = "completion"
)

// Params carries workflow inputs. Each kind reads its own subset; see
// requiredParams for which fields are mandatory per kind.
type Params struct {
	RepoName        string
	BranchName      string
	TaskTitle       string
	TaskDescription string
	ListID          string // task board list for the new card
	PRTitle         string
	CardID          string
	ReviewListID    string
}

// requiredParams maps each workflow kind to its mandatory fields.
func requiredParams(kind Kind, p Params) map[string]string {
	switch kind {
	case TaskCreation:
		return map[string]string{
			"repoName":        p.RepoName,
			"branchName":      p.BranchName,
			"taskTitle":       p.TaskTitle,
			"taskDescription": p.TaskDescription,
			"trelloListId":    p.ListID,
		}
	case ReviewTransition:
		return map[string]string{
			"repoName":   p.RepoName,
			"branchName": p.BranchName,
			"prTitle":    p.PRTitle,
		}
	case Completion:
		return map[string]string{
			"cardId":     p.CardID,
			"repoName":   p.RepoName,
			"branchName": p.BranchName,
		}
	default:
		return nil
	}
}

// validateParams checks the mandatory fields for a kind. Field names
// in error messages match the caller-facing parameter names.
func validateParams(kind Kind, p Params) error {
	required := requiredParams(kind, p)
	if required == nil {
		return &Error{Kind: UnknownWorkflow, Err: fmt.Errorf("%w: %q", ErrUnknownWorkflow, kind)}
	}

	// Report the missing fields in a stable order.
	for _, name := range paramOrder(kind) {
		if required[name] == "" {
			return &Error{Kind: MissingParam, Err: fmt.Errorf("%w: %s", ErrMissingParam, name)}
		}
	}
	return nil
}

func paramOrder(kind Kind) []string {
	switch kind {
	case TaskCreation:
		return []string{"repoName", "branchName", "taskTitle", "taskDescription", "trelloListId"}
	case ReviewTransition:
		return []string{"repoName", "branchName", "prTitle"}
	case Completion:
		return []string{"cardId", "repoName", "branchName"}
	default:
		return nil
	}
}

// wantsCardMove reports whether a ReviewTransition run should schedule
// the optional move and comment steps. Both identifiers must be
// present; a lone cardId or reviewListId schedules nothing.
func (p Params) wantsCardMove() bool {
	return p.CardID != "" && p.ReviewListID != ""
}
