package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thedocproject/thedoc/internal/config"
	"github.com/thedocproject/thedoc/internal/conventional"
	"github.com/thedocproject/thedoc/internal/errors"
	"github.com/thedocproject/thedoc/internal/gitlog"
	"github.com/thedocproject/thedoc/internal/output"
	"github.com/thedocproject/thedoc/internal/relnotes"
)

var releaseNotesCmd = &cobra.Command{
	Use:   "release-notes",
	Short: "Generate release notes from conventional commits",
	Long: `Read the commit history over a revision range, classify commits by their
conventional-commit type, and write a grouped release-notes document.

The default range is everything since the most recent tag (full history
when the repository has no tags). Every commit is included: messages that
do not follow the conventional format land in the Other section.

Examples:
  thedoc release-notes                          # Since the last tag
  thedoc release-notes --since-tag v1.2.0       # Since a specific tag
  thedoc release-notes --from v1.0.0 --to v2.0.0
  thedoc release-notes --output CHANGES.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := releaseNotesOptions{Output: cfg.ReleaseNotes.Output}
		opts.From, _ = cmd.Flags().GetString("from")
		opts.To, _ = cmd.Flags().GetString("to")
		opts.SinceTag, _ = cmd.Flags().GetString("since-tag")
		if cmd.Flags().Changed("output") {
			opts.Output, _ = cmd.Flags().GetString("output")
		}

		return runReleaseNotes(cmd.Context(), cmd.OutOrStdout(), ".", cfg, opts)
	},
}

func init() {
	rootCmd.AddCommand(releaseNotesCmd)
	releaseNotesCmd.Flags().String("from", "", "Start revision, exclusive (tag, branch, or hash)")
	releaseNotesCmd.Flags().String("to", "", "End revision, inclusive (default: HEAD)")
	releaseNotesCmd.Flags().String("since-tag", "", "Include commits after the given tag")
	releaseNotesCmd.Flags().StringP("output", "o", "", "Output file (default: from config)")
}

type releaseNotesOptions struct {
	From     string
	To       string
	SinceTag string
	Output   string
}

func runReleaseNotes(ctx context.Context, out io.Writer, repoPath string, cfg *config.Configuration, opts releaseNotesOptions) error {
	if opts.SinceTag != "" && opts.From != "" {
		return errors.InvalidFlagCombination("--since-tag and --from",
			"--since-tag is shorthand for --from <tag>; pass one or the other")
	}

	repo, err := gitlog.Open(repoPath)
	if err != nil {
		return errors.NotAGitRepository(repoPath)
	}

	rng, err := resolveRange(repo, opts)
	if err != nil {
		return err
	}

	commits, err := repo.CommitsInRange(ctx, rng)
	if err != nil {
		return errors.Wrap(err, errors.Repository,
			"Check the revision names: git tag --list",
			"Revisions accept tags, branches, and commit hashes")
	}

	doc, err := renderReleaseNotes(commits, cfg.ReleaseNotes)
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}

	if err := writeFileAtomic(opts.Output, []byte(doc)); err != nil {
		return errors.OutputNotWritable(opts.Output, err)
	}

	output.PrintSuccess(out, fmt.Sprintf("%s (%d commits)", opts.Output, len(commits)))
	return nil
}

// resolveRange turns the flag combination into a commit range. With no range
// flags at all, the range is everything since the last tag, or full history
// in an untagged repository.
func resolveRange(repo *gitlog.Repo, opts releaseNotesOptions) (gitlog.Range, error) {
	if opts.SinceTag != "" {
		return gitlog.Range{From: opts.SinceTag, To: opts.To}, nil
	}
	if opts.From != "" || opts.To != "" {
		return gitlog.Range{From: opts.From, To: opts.To}, nil
	}

	rng, err := repo.RangeSinceLastTag()
	if err != nil {
		return gitlog.Range{}, errors.Wrap(err, errors.Repository)
	}
	return rng, nil
}

// renderReleaseNotes runs the parse-classify-render pipeline in memory.
func renderReleaseNotes(commits []gitlog.Commit, rnCfg config.ReleaseNotesConfig) (string, error) {
	extensions := make([]conventional.Type, 0, len(rnCfg.Types))
	for _, t := range rnCfg.Types {
		extensions = append(extensions, conventional.Type(strings.ToLower(t)))
	}

	parser := conventional.NewParser(extensions...)
	parsed := make([]conventional.ParsedCommit, 0, len(commits))
	for _, commit := range commits {
		parsed = append(parsed, parser.Parse(commit.Message))
	}

	labels := make(map[conventional.Type]string, len(rnCfg.Labels))
	for t, label := range rnCfg.Labels {
		labels[conventional.Type(strings.ToLower(t))] = label
	}

	sectionCfg := relnotes.DefaultConfig().WithTypes(extensions, labels)
	return relnotes.RenderMarkdownString(relnotes.Aggregate(parsed), sectionCfg)
}

// writeFileAtomic writes via a temp file in the target directory followed by
// a rename, so a failed run never leaves a partial document behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
