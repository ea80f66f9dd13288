package gitlog

import (
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
)

// testRepo builds a throwaway on-disk repository for history tests.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	now  time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{
		t:    t,
		dir:  dir,
		repo: repo,
		wt:   wt,
		now:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// commit writes a file and commits it with a monotonically increasing
// timestamp so chronological assertions are stable.
func (r *testRepo) commit(message string) plumbing.Hash {
	return r.commitWithParents(message)
}

// commitWithParents commits with an explicit parent list, which lets tests
// build branched and merged histories without checkouts.
func (r *testRepo) commitWithParents(message string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()

	r.now = r.now.Add(time.Minute)
	name := "file-" + r.now.Format("150405") + ".txt"
	require.NoError(r.t, os.WriteFile(filepath.Join(r.dir, name), []byte(message), 0o644))

	_, err := r.wt.Add(name)
	require.NoError(r.t, err)

	hash, err := r.wt.Commit(message, &git.CommitOptions{
		Author:  &object.Signature{Name: "Test Author", Email: "test@example.com", When: r.now},
		Parents: parents,
	})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

func messages(commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Message
	}
	return out
}

func TestOpen_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := Open(t.TempDir())
	assert.Error(t, err)
}

func TestCommitsInRange_FullHistory(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: first")
	r.commit("fix: second")
	r.commit("chore: third")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	commits, err := repo.CommitsInRange(context.Background(), Range{})
	require.NoError(t, err)

	// Chronological order, oldest first.
	assert.Equal(t, []string{"feat: first", "fix: second", "chore: third"}, messages(commits))
	assert.Equal(t, "Test Author <test@example.com>", commits[0].Author)
	assert.NotEmpty(t, commits[0].Hash)
}

func TestCommitsInRange_FromIsExclusive(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	first := r.commit("feat: first")
	r.commit("fix: second")
	r.commit("feat: third")
	r.tag("v1.0.0", first)

	repo, err := Open(r.dir)
	require.NoError(t, err)

	commits, err := repo.CommitsInRange(context.Background(), Range{From: "v1.0.0"})
	require.NoError(t, err)

	assert.Equal(t, []string{"fix: second", "feat: third"}, messages(commits))
}

func TestCommitsInRange_MergedHistory(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	base := r.commit("feat: base")
	side := r.commitWithParents("feat: side branch work", base)
	main := r.commitWithParents("chore: mainline", base)
	r.tag("v1.0.0", main)
	r.commitWithParents("chore: merge side branch", main, side)

	repo, err := Open(r.dir)
	require.NoError(t, err)

	commits, err := repo.CommitsInRange(context.Background(), Range{From: "v1.0.0"})
	require.NoError(t, err)

	// The side branch is not an ancestor of the tag, so its commits are in
	// range even though the merge's first parent is the tagged commit.
	// Everything reachable from the tag stays out.
	assert.Equal(t, []string{"feat: side branch work", "chore: merge side branch"}, messages(commits))
}

func TestCommitsInRange_ExplicitTo(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: first")
	second := r.commit("fix: second")
	r.commit("feat: third")
	r.tag("v1.1.0", second)

	repo, err := Open(r.dir)
	require.NoError(t, err)

	commits, err := repo.CommitsInRange(context.Background(), Range{To: "v1.1.0"})
	require.NoError(t, err)

	assert.Equal(t, []string{"feat: first", "fix: second"}, messages(commits))
}

func TestCommitsInRange_UnresolvableRevision(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: first")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	_, err = repo.CommitsInRange(context.Background(), Range{From: "no-such-tag"})
	assert.ErrorContains(t, err, "no-such-tag")

	_, err = repo.CommitsInRange(context.Background(), Range{To: "no-such-ref"})
	assert.ErrorContains(t, err, "no-such-ref")
}

func TestLatestTag(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	first := r.commit("feat: first")
	second := r.commit("fix: second")
	r.commit("feat: third")
	r.tag("v1.0.0", first)
	r.tag("v1.1.0", second)

	repo, err := Open(r.dir)
	require.NoError(t, err)

	tag, err := repo.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", tag)
}

func TestLatestTag_NoTags(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: first")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	_, err = repo.LatestTag()
	assert.ErrorIs(t, err, ErrNoTags)
}

func TestRangeSinceLastTag(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	first := r.commit("feat: first")
	r.commit("fix: second")
	r.tag("v1.0.0", first)

	repo, err := Open(r.dir)
	require.NoError(t, err)

	rng, err := repo.RangeSinceLastTag()
	require.NoError(t, err)
	assert.Equal(t, Range{From: "v1.0.0"}, rng)

	commits, err := repo.CommitsInRange(context.Background(), rng)
	require.NoError(t, err)
	assert.Equal(t, []string{"fix: second"}, messages(commits))
}

func TestRangeSinceLastTag_NoTags(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: first")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	rng, err := repo.RangeSinceLastTag()
	require.NoError(t, err)
	assert.Equal(t, Range{}, rng)
}
