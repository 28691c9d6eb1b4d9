package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)

	entry, ok := store.Lookup("branch-naming")
	require.True(t, ok, "embedded branch-naming topic should exist")
	assert.Equal(t, "Branch naming policy", entry.Title)
	assert.Contains(t, entry.Body, "feature/")
}

func TestLoad_ProjectOverride(t *testing.T) {
	dir := t.TempDir()
	override := `topics:
  - topic: branch-naming
    title: Local branch policy
    body: overridden
  - topic: deploys
    title: Deploy runbook
    body: ship it
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs.yaml"), []byte(override), 0o644))

	store, err := Load(dir)
	require.NoError(t, err)

	entry, ok := store.Lookup("branch-naming")
	require.True(t, ok)
	assert.Equal(t, "Local branch policy", entry.Title, "project file should override embedded entry")

	_, ok = store.Lookup("deploys")
	assert.True(t, ok, "project-only topic should be present")
}

func TestLoad_MissingDirSkipped(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.NotEmpty(t, store.Topics())
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("topics: {not a list"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)

	_, ok := store.Lookup("Branch-Naming")
	assert.True(t, ok)
}

func TestSearch(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)

	found := store.Search("policy")
	require.NotEmpty(t, found)
	assert.Equal(t, "branch-naming", found[0].Topic)

	assert.Empty(t, store.Search("no-such-thing"))
}
