package taskflow

import (
	"context"

	"github.com/taskflow-dev/taskflow/docs"
	"github.com/taskflow-dev/taskflow/shell"
)

// serviceContextKey is a private type for context keys to avoid collisions
type serviceContextKey string

// Context keys for taskflow services
const (
	runnerServiceKey serviceContextKey = "taskflow.runner"
	docsServiceKey   serviceContextKey = "taskflow.docs"
)

// WithRunner adds a command runner to the context.
func WithRunner(ctx context.Context, runner shell.Runner) context.Context {
	return context.WithValue(ctx, runnerServiceKey, runner)
}

// RunnerFromContext extracts the command runner from context.
// Returns nil if no runner is configured.
func RunnerFromContext(ctx context.Context) shell.Runner {
	if runner, ok := ctx.Value(runnerServiceKey).(shell.Runner); ok {
		return runner
	}
	return nil
}

// WithDocs adds a docs store to the context.
func WithDocs(ctx context.Context, store *docs.Store) context.Context {
	return context.WithValue(ctx, docsServiceKey, store)
}

// DocsFromContext extracts the docs store from context.
// Returns nil if no store is configured.
func DocsFromContext(ctx context.Context) *docs.Store {
	if store, ok := ctx.Value(docsServiceKey).(*docs.Store); ok {
		return store
	}
	return nil
}
