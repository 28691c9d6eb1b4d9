package shell

import (
	"errors"
	"testing"
)

func TestNewExecRunner(t *testing.T) {
	if NewExecRunner() == nil {
		t.Error("NewExecRunner should return non-nil runner")
	}
}

func TestExecRunner_Run_Success(t *testing.T) {
	runner := NewExecRunner()

	output, err := runner.Run("", "echo", "hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if output != "hello" {
		t.Errorf("output = %q, want %q", output, "hello")
	}
}

func TestExecRunner_Run_Error(t *testing.T) {
	runner := NewExecRunner()

	_, err := runner.Run("", "ls", "/nonexistent/path/that/does/not/exist")
	if err == nil {
		t.Error("expected error for nonexistent path")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Errorf("error should be CommandError, got %T", err)
	}
}

func TestCommandError_Error(t *testing.T) {
	t.Run("with output", func(t *testing.T) {
		err := &CommandError{
			Command: "git",
			Args:    []string{"status"},
			Output:  "fatal: not a git repository",
			Err:     errors.New("exit status 128"),
		}

		if got := err.Error(); got != "fatal: not a git repository" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("without output", func(t *testing.T) {
		err := &CommandError{
			Command: "git",
			Args:    []string{"push"},
			Err:     errors.New("exit status 1"),
		}

		if got := err.Error(); got != "git push: exit status 1" {
			t.Errorf("Error() = %q", got)
		}
	})
}

func TestMockRunner(t *testing.T) {
	runner := NewMockRunner()
	runner.Responses["make"] = "ok"
	runner.Errors["rm"] = errors.New("denied")

	out, err := runner.Run("/tmp", "make", "test")
	if err != nil || out != "ok" {
		t.Errorf("Run(make) = (%q, %v)", out, err)
	}

	if _, err := runner.Run("", "rm", "-rf"); err == nil {
		t.Error("expected canned error for rm")
	}

	if len(runner.Calls) != 2 {
		t.Fatalf("Calls = %d, want 2", len(runner.Calls))
	}
	if runner.Calls[0].Dir != "/tmp" || runner.Calls[0].Name != "make" {
		t.Errorf("first call = %+v", runner.Calls[0])
	}
	if !runner.CalledWith("rm") || runner.CalledWith("git") {
		t.Error("CalledWith bookkeeping wrong")
	}
}
