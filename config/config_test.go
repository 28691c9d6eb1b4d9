package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolveDefaults(t *testing.T) {
	r := NewResolverWithPaths(ResolverConfig{
		Defaults: map[string]string{"base_branch": "main"},
	}, "", "")

	cfg := r.Resolve()
	if got := cfg.Get("base_branch"); got != "main" {
		t.Errorf("Get(base_branch) = %q, want main", got)
	}
	if src := cfg.Source("base_branch"); src != SourceDefault {
		t.Errorf("Source(base_branch) = %q, want default", src)
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	global := writeConfigFile(t, dir, "global.yaml", "base_branch: develop\ntrello_key: global-key\n")
	local := writeConfigFile(t, dir, "local.yaml", "base_branch: release\n")

	r := NewResolverWithPaths(ResolverConfig{
		EnvPrefix: "TESTFLOW_",
		Defaults:  map[string]string{"base_branch": "main"},
	}, global, local)

	t.Setenv("TESTFLOW_TRELLO_KEY", "env-key")

	cfg := r.Resolve()

	// Local overrides global which overrides defaults.
	if got := cfg.Get("base_branch"); got != "release" {
		t.Errorf("Get(base_branch) = %q, want release", got)
	}
	if src := cfg.Source("base_branch"); src != SourceLocal {
		t.Errorf("Source(base_branch) = %q, want local", src)
	}

	// Env overrides files.
	if got := cfg.Get("trello_key"); got != "env-key" {
		t.Errorf("Get(trello_key) = %q, want env-key", got)
	}
	if src := cfg.Source("trello_key"); src != SourceEnv {
		t.Errorf("Source(trello_key) = %q, want env", src)
	}
}

func TestResolveSkipsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	local := writeConfigFile(t, dir, "local.yaml", "base_branch: develop\nmystery: value\n")

	r := NewResolverWithPaths(ResolverConfig{
		ValidKeys: []string{"base_branch"},
	}, "", local)

	cfg := r.Resolve()
	if got := cfg.Get("mystery"); got != "" {
		t.Errorf("Get(mystery) = %q, want empty", got)
	}
	if got := cfg.Get("base_branch"); got != "develop" {
		t.Errorf("Get(base_branch) = %q, want develop", got)
	}
}

func TestResolveWarnsOnBadYAML(t *testing.T) {
	dir := t.TempDir()
	local := writeConfigFile(t, dir, "local.yaml", "{{not yaml")

	var buf bytes.Buffer
	r := NewResolverWithPaths(ResolverConfig{ErrWriter: &buf}, "", local)

	r.Resolve()
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for unparseable config")
	}
	if !strings.Contains(buf.String(), "Warning") {
		t.Errorf("warning not written to ErrWriter: %q", buf.String())
	}
}

func TestResolveMissingFilesIgnored(t *testing.T) {
	r := NewResolverWithPaths(ResolverConfig{
		Defaults: map[string]string{"base_branch": "main"},
	}, "/nonexistent/global.yaml", "/nonexistent/local.yaml")

	cfg := r.Resolve()
	if got := cfg.Get("base_branch"); got != "main" {
		t.Errorf("Get(base_branch) = %q, want main", got)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "value", "value"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"int", 42, "42"},
		{"unsupported", []string{"a"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toString(tt.in); got != tt.want {
				t.Errorf("toString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
