package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceGlobal indicates the value came from the global config
	// (~/.config/taskflow/config.yaml).
	SourceGlobal Source = "global"

	// SourceLocal indicates the value came from the project config
	// (.taskflow.yaml in the git root).
	SourceLocal Source = "local"

	// SourceEnv indicates the value came from an environment variable.
	SourceEnv Source = "env"
)
