package shell

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes local commands through a mockable interface.
type Runner interface {
	// Run executes name with args in dir (empty dir means the current
	// working directory) and returns trimmed combined output.
	Run(dir, name string, args ...string) (string, error)
}

// CommandError wraps a failed command with its output.
type CommandError struct {
	Command string   // Command name (e.g., "git")
	Args    []string // Command arguments
	Output  string   // Combined stdout/stderr output
	Err     error    // Underlying error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	return fmt.Sprintf("%s %s: %v", e.Command, strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		return output, &CommandError{
			Command: name,
			Args:    args,
			Output:  output,
			Err:     err,
		}
	}

	return output, nil
}

// Call records one invocation seen by a MockRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// MockRunner is a Runner for tests: it records calls and replays
// canned responses keyed by command name.
type MockRunner struct {
	Calls     []Call
	Responses map[string]string // command name -> output
	Errors    map[string]error  // command name -> error
}

// NewMockRunner creates an empty mock runner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

// Run implements Runner.
func (r *MockRunner) Run(dir, name string, args ...string) (string, error) {
	r.Calls = append(r.Calls, Call{Dir: dir, Name: name, Args: args})

	if err, ok := r.Errors[name]; ok {
		return r.Responses[name], err
	}
	return r.Responses[name], nil
}

// CalledWith reports whether any recorded call used the given command name.
func (r *MockRunner) CalledWith(name string) bool {
	for _, c := range r.Calls {
		if c.Name == name {
			return true
		}
	}
	return false
}
