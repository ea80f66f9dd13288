// Package gitlog reads commit history from a git repository for release-note
// generation. It uses the go-git library so no git CLI installation is
// required, and it never mutates the repository.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoTags is returned by LatestTag when the repository has no tags.
var ErrNoTags = errors.New("repository has no tags")

// Commit is one commit as read from the repository: immutable raw input for
// the release-notes pipeline.
type Commit struct {
	Hash    string
	Author  string
	When    time.Time
	Message string
}

// Range selects the commits to include. From is exclusive and optional
// (empty means the full history); To is inclusive and defaults to HEAD.
// Both accept anything go-git can resolve: tag names, branch names, hashes.
type Range struct {
	From string
	To   string
}

// Repo wraps an open git repository.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository at path, traversing up the directory tree to
// find the repository root. An empty path means the current directory.
func Open(path string) (*Repo, error) {
	if path == "" {
		path = "."
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repo{repo: repo}, nil
}

// CommitsInRange returns the commits selected by rng in chronological order
// (oldest first). Selection follows git's From..To ancestry semantics: every
// commit reachable from To but not from From, so merged side branches are
// included in full. Both endpoints are resolved before any history is walked,
// so an invalid range fails fast without partial results.
func (r *Repo) CommitsInRange(ctx context.Context, rng Range) ([]Commit, error) {
	to := rng.To
	if to == "" {
		to = "HEAD"
	}

	toHash, err := r.repo.ResolveRevision(plumbing.Revision(to))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", to, err)
	}

	var exclude map[plumbing.Hash]bool
	if rng.From != "" {
		h, err := r.repo.ResolveRevision(plumbing.Revision(rng.From))
		if err != nil {
			return nil, fmt.Errorf("resolving revision %q: %w", rng.From, err)
		}
		exclude, err = r.reachableFrom(ctx, *h)
		if err != nil {
			return nil, err
		}
	}

	iter, err := r.repo.Log(&git.LogOptions{From: *toHash})
	if err != nil {
		return nil, fmt.Errorf("reading history from %q: %w", to, err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if exclude[c.Hash] {
			return nil
		}
		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Author:  formatAuthor(c.Author),
			When:    c.Author.When,
			Message: c.Message,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	sortChronological(commits)
	return commits, nil
}

// reachableFrom collects every commit reachable from h, i.e. the set a
// From endpoint excludes from a range.
func (r *Repo) reachableFrom(ctx context.Context, h plumbing.Hash) (map[plumbing.Hash]bool, error) {
	start, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", h, err)
	}

	seen := make(map[plumbing.Hash]bool)
	iter := object.NewCommitPreorderIter(start, nil, nil)
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", h, err)
	}
	return seen, nil
}

// LatestTag returns the name of the tag pointing at the most recent commit,
// considering both lightweight and annotated tags. Ties on commit time are
// broken by tag name so the result is deterministic.
func (r *Repo) LatestTag() (string, error) {
	tags, err := r.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}
	defer tags.Close()

	var (
		bestName string
		bestTime time.Time
	)

	err = tags.ForEach(func(ref *plumbing.Reference) error {
		commit, err := r.tagCommit(ref)
		if err != nil {
			// Tag points at a non-commit object (e.g. a tree); skip it.
			return nil
		}

		name := ref.Name().Short()
		when := commit.Author.When
		if bestName == "" || when.After(bestTime) || (when.Equal(bestTime) && name > bestName) {
			bestName = name
			bestTime = when
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	if bestName == "" {
		return "", ErrNoTags
	}
	return bestName, nil
}

// RangeSinceLastTag returns a range from the most recent tag to HEAD.
// Repositories without tags get the full history.
func (r *Repo) RangeSinceLastTag() (Range, error) {
	tag, err := r.LatestTag()
	if errors.Is(err, ErrNoTags) {
		return Range{}, nil
	}
	if err != nil {
		return Range{}, err
	}
	return Range{From: tag}, nil
}

// tagCommit resolves a tag reference to its target commit, peeling
// annotated tag objects.
func (r *Repo) tagCommit(ref *plumbing.Reference) (*object.Commit, error) {
	if tag, err := r.repo.TagObject(ref.Hash()); err == nil {
		return tag.Commit()
	}
	return r.repo.CommitObject(ref.Hash())
}

// formatAuthor renders a commit signature as "Name <email>".
func formatAuthor(sig object.Signature) string {
	if sig.Email == "" {
		return sig.Name
	}
	return fmt.Sprintf("%s <%s>", sig.Name, sig.Email)
}

// sortChronological orders commits oldest first. Timestamp ties are broken
// by hash so merged histories render deterministically.
func sortChronological(commits []Commit) {
	sort.Slice(commits, func(i, j int) bool {
		if !commits[i].When.Equal(commits[j].When) {
			return commits[i].When.Before(commits[j].When)
		}
		return commits[i].Hash < commits[j].Hash
	})
}
