package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thedocproject/thedoc/internal/scan"
)

func readConfig(t *testing.T, s *Site) MkDocsConfig {
	t.Helper()
	data, err := os.ReadFile(s.ConfigPath())
	require.NoError(t, err)

	var cfg MkDocsConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	return cfg
}

func TestScaffold(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	require.NoError(t, s.Scaffold("My Project", "docs", false))

	cfg := readConfig(t, s)
	assert.Equal(t, "My Project", cfg.SiteName)
	assert.Equal(t, "docs", cfg.DocsDir)
	assert.Equal(t, []NavEntry{{"Home": "index.md"}}, cfg.Nav)
}

func TestScaffold_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	require.NoError(t, s.Scaffold("First", "docs", false))

	err := s.Scaffold("Second", "docs", false)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, s.Scaffold("Second", "docs", true))
	assert.Equal(t, "Second", readConfig(t, s).SiteName)
}

func TestScaffold_DefaultSiteName(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	require.NoError(t, s.Scaffold("", "docs", false))
	assert.Equal(t, "Documentation", readConfig(t, s).SiteName)
}

func TestSyncNav(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	require.NoError(t, s.Scaffold("My Project", "docs", false))

	docs := []scan.FileDoc{
		{Path: "b/Later.swift"},
		{Path: "a/Earlier.kt"},
	}
	require.NoError(t, s.SyncNav(docs, "release-notes.md"))

	cfg := readConfig(t, s)
	assert.Equal(t, []NavEntry{
		{"Home": "index.md"},
		{"a/Earlier.md": "a/Earlier.md"},
		{"b/Later.md": "b/Later.md"},
		{"Release Notes": "release-notes.md"},
	}, cfg.Nav)
}

func TestSyncNav_NoReleaseNotes(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	require.NoError(t, s.Scaffold("My Project", "docs", false))
	require.NoError(t, s.SyncNav(nil, ""))

	assert.Equal(t, []NavEntry{{"Home": "index.md"}}, readConfig(t, s).Nav)
}

func TestSyncNav_MissingConfig(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())
	assert.Error(t, s.SyncNav(nil, ""))
}

func TestNew_EmptyDirIsCwd(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join(".", "mkdocs.yml"), New("").ConfigPath())
}
