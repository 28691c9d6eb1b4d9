// Package config provides hierarchical configuration for taskflow.
//
// Values are resolved with clear precedence:
//  1. TASKFLOW_* environment variables (highest priority)
//  2. Project config (.taskflow.yaml in the git root)
//  3. Global config (~/.config/taskflow/config.yaml)
//  4. Built-in defaults (lowest priority)
//
// Load returns the merged Settings:
//
//	settings := config.Load()
//	if err := settings.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// Tokens belong in the global config or the environment; list ids and
// the base branch are usually committed in the project config.
package config
