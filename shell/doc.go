// Package shell provides local command execution behind a mockable
// interface.
//
// Core types:
//   - Runner: Interface for executing commands (with mock for testing)
//   - ExecRunner: Runner backed by os/exec
//   - MockRunner: Records calls and replays canned responses
//   - CommandError: Failed command with captured output
package shell
