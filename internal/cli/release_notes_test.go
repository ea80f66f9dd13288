package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedocproject/thedoc/internal/config"
	"github.com/thedocproject/thedoc/internal/errors"
)

// commitRepo builds an on-disk repository with the given commit messages,
// committed in order with increasing timestamps.
type commitRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	now  time.Time
}

func newCommitRepo(t *testing.T) *commitRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &commitRepo{
		t:    t,
		dir:  dir,
		repo: repo,
		wt:   wt,
		now:  time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *commitRepo) commit(message string) plumbing.Hash {
	r.t.Helper()

	r.now = r.now.Add(time.Minute)
	name := "f-" + r.now.Format("150405") + ".txt"
	require.NoError(r.t, os.WriteFile(filepath.Join(r.dir, name), []byte(message), 0o644))
	_, err := r.wt.Add(name)
	require.NoError(r.t, err)

	hash, err := r.wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Dev", Email: "dev@example.com", When: r.now},
	})
	require.NoError(r.t, err)
	return hash
}

func (r *commitRepo) tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

func defaultTestConfig(t *testing.T) *config.Configuration {
	t.Helper()
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "missing.yml"),
		SkipWarnings:      true,
	})
	require.NoError(t, err)
	return cfg
}

func TestRunReleaseNotes_FullPipeline(t *testing.T) {
	t.Parallel()

	r := newCommitRepo(t)
	r.commit("feat(api): add users endpoint")
	r.commit("fix: handle empty payload")
	r.commit("feat!: drop v1 routes")
	r.commit("updated some stuff")

	outPath := filepath.Join(t.TempDir(), "docs", "release-notes.md")
	var out bytes.Buffer

	err := runReleaseNotes(context.Background(), &out, r.dir, defaultTestConfig(t),
		releaseNotesOptions{Output: outPath})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "# Release Notes\n")
	assert.Contains(t, doc, "## BREAKING CHANGES\n\n- drop v1 routes\n")
	assert.Contains(t, doc, "## Features\n\n- **api**: add users endpoint\n")
	assert.Contains(t, doc, "## Bug Fixes\n\n- handle empty payload\n")
	assert.Contains(t, doc, "## Other\n\n- updated some stuff\n")
	// The breaking feat appears only under BREAKING CHANGES.
	assert.Equal(t, 1, bytes.Count(data, []byte("drop v1 routes")))
	assert.Contains(t, out.String(), "4 commits")
}

func TestRunReleaseNotes_Idempotent(t *testing.T) {
	t.Parallel()

	r := newCommitRepo(t)
	r.commit("feat: one")
	r.commit("fix: two")

	outPath := filepath.Join(t.TempDir(), "notes.md")
	cfg := defaultTestConfig(t)
	opts := releaseNotesOptions{Output: outPath}

	require.NoError(t, runReleaseNotes(context.Background(), new(bytes.Buffer), r.dir, cfg, opts))
	first, err := os.ReadFile(outPath)
	require.NoError(t, err)

	require.NoError(t, runReleaseNotes(context.Background(), new(bytes.Buffer), r.dir, cfg, opts))
	second, err := os.ReadFile(outPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunReleaseNotes_DefaultRangeSinceLastTag(t *testing.T) {
	t.Parallel()

	r := newCommitRepo(t)
	tagged := r.commit("feat: before tag")
	r.tag("v1.0.0", tagged)
	r.commit("fix: after tag")

	outPath := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, runReleaseNotes(context.Background(), new(bytes.Buffer), r.dir,
		defaultTestConfig(t), releaseNotesOptions{Output: outPath}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "before tag")
	assert.Contains(t, string(data), "after tag")
}

func TestRunReleaseNotes_ExtensionTypes(t *testing.T) {
	t.Parallel()

	r := newCommitRepo(t)
	r.commit("deps: bump go-git")

	cfg := defaultTestConfig(t)
	cfg.ReleaseNotes.Types = []string{"deps"}
	cfg.ReleaseNotes.Labels = map[string]string{"deps": "Dependencies"}

	outPath := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, runReleaseNotes(context.Background(), new(bytes.Buffer), r.dir, cfg,
		releaseNotesOptions{Output: outPath}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Dependencies\n\n- bump go-git\n")
}

func TestRunReleaseNotes_ConflictingFlags(t *testing.T) {
	t.Parallel()

	r := newCommitRepo(t)
	r.commit("feat: one")

	err := runReleaseNotes(context.Background(), new(bytes.Buffer), r.dir, defaultTestConfig(t),
		releaseNotesOptions{From: "v1.0.0", SinceTag: "v1.0.0", Output: filepath.Join(t.TempDir(), "n.md")})

	cliErr := errors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, errors.Argument, cliErr.Category)
}

func TestRunReleaseNotes_UnresolvableRevision(t *testing.T) {
	t.Parallel()

	r := newCommitRepo(t)
	r.commit("feat: one")

	outPath := filepath.Join(t.TempDir(), "n.md")
	err := runReleaseNotes(context.Background(), new(bytes.Buffer), r.dir, defaultTestConfig(t),
		releaseNotesOptions{From: "no-such-tag", Output: outPath})

	cliErr := errors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, errors.Repository, cliErr.Category)

	// Nothing partially written.
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunReleaseNotes_NotARepository(t *testing.T) {
	t.Parallel()

	err := runReleaseNotes(context.Background(), new(bytes.Buffer), t.TempDir(), defaultTestConfig(t),
		releaseNotesOptions{Output: filepath.Join(t.TempDir(), "n.md")})

	cliErr := errors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, errors.Repository, cliErr.Category)
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, writeFileAtomic(path, []byte("first, longer content\n")))
	require.NoError(t, writeFileAtomic(path, []byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
