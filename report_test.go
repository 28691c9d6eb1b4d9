package taskflow

import (
	"strings"
	"testing"
	"time"
)

func TestReporterRenderSuccess(t *testing.T) {
	started := time.Now()
	outcome := Outcome{
		RunID:   "run_abc",
		Kind:    TaskCreation,
		State:   StateCompleted,
		Success: true,
		Message: "task-creation completed (2 steps)",
		Steps: []StepResult{
			{Name: "create-branch", Service: ServiceVersionControl},
			{Name: "create-card", Service: ServiceTaskBoard},
		},
		Started:  started,
		Finished: started.Add(1200 * time.Millisecond),
	}

	out := Reporter{}.Render(outcome)

	for _, want := range []string{
		"Task Creation [run_abc]",
		"Status: completed",
		"1. create-branch (version-control)",
		"2. create-card (task-board)",
		"Duration: 1.2s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Failure:") {
		t.Errorf("success report should not carry a failure block:\n%s", out)
	}
}

func TestReporterRenderFailure(t *testing.T) {
	outcome := Outcome{
		RunID:   "run_xyz",
		Kind:    ReviewTransition,
		State:   StateAborted,
		Message: "step create-pr: pull request already exists for this branch",
	}

	out := Reporter{}.Render(outcome)

	for _, want := range []string{
		"Review Transition [run_xyz]",
		"Status: aborted",
		"Steps: none",
		"Failure: step create-pr: pull request already exists",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReporterStyledStillCarriesText(t *testing.T) {
	outcome := Outcome{
		RunID:   "run_abc",
		Kind:    Completion,
		State:   StateCompleted,
		Success: true,
		Steps:   []StepResult{{Name: "close-card", Service: ServiceTaskBoard}},
	}

	out := Reporter{Styled: true}.Render(outcome)
	if !strings.Contains(out, "close-card") {
		t.Errorf("styled report lost step text:\n%s", out)
	}
}
