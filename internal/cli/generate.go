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
	"github.com/thedocproject/thedoc/internal/docgen"
	"github.com/thedocproject/thedoc/internal/errors"
	"github.com/thedocproject/thedoc/internal/output"
	"github.com/thedocproject/thedoc/internal/progress"
	"github.com/thedocproject/thedoc/internal/scan"
	"github.com/thedocproject/thedoc/internal/site"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Scan sources and generate Markdown documentation",
	Long: `Scan the repository for documentation comments using the configured
language parsers and write Markdown pages into the output directory.

When an mkdocs.yml exists, its nav section is updated to list the
generated pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runGenerate(cmd.Context(), cmd.OutOrStdout(), ".", cfg)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(ctx context.Context, out io.Writer, root string, cfg *config.Configuration) error {
	parsers, err := parsersFor(cfg.Languages)
	if err != nil {
		return err
	}

	scanner := scan.NewScanner(root,
		scan.WithExclude(cfg.ExcludePatterns),
		scan.WithParsers(parsers),
	)

	spin := progress.NewSpinner(out)
	spin.Start("Scanning sources")
	docs, err := scanner.Scan(ctx)
	if err != nil {
		spin.Stop(false, "scan failed")
		return errors.Wrap(err, errors.Runtime)
	}
	spin.Stop(true, fmt.Sprintf("Scanned %d documented files", len(docs)))

	generator := docgen.NewGenerator(docgen.WithTitle(cfg.ProjectName))
	if err := generator.WriteAll(docs, cfg.OutputDir); err != nil {
		return errors.OutputNotWritable(cfg.OutputDir, err)
	}
	output.PrintSuccess(out, cfg.OutputDir+string(os.PathSeparator))

	// Keep the site nav in step when a site skeleton exists.
	s := site.New(cfg.SiteDir)
	if _, err := os.Stat(s.ConfigPath()); err == nil {
		if err := s.SyncNav(docs, releaseNotesNavPage(cfg)); err != nil {
			return errors.Wrap(err, errors.Runtime)
		}
		output.PrintSuccess(out, s.ConfigPath())
	}

	return nil
}

// parsersFor maps configured language names to scanners.
func parsersFor(languages []string) ([]scan.LanguageParser, error) {
	byName := make(map[string]scan.LanguageParser)
	for _, p := range scan.AllParsers() {
		byName[p.Language()] = p
	}

	parsers := make([]scan.LanguageParser, 0, len(languages))
	for _, lang := range languages {
		p, ok := byName[lang]
		if !ok {
			return nil, errors.UnknownLanguage(lang)
		}
		parsers = append(parsers, p)
	}
	return parsers, nil
}

// releaseNotesNavPage returns the release-notes page path relative to the
// docs dir when the document exists, or "" when it does not.
func releaseNotesNavPage(cfg *config.Configuration) string {
	if _, err := os.Stat(cfg.ReleaseNotes.Output); err != nil {
		return ""
	}
	rel, err := relToDocsDir(cfg.ReleaseNotes.Output, cfg.OutputDir)
	if err != nil {
		return ""
	}
	return rel
}

// relToDocsDir rewrites a path relative to the docs dir for nav entries.
func relToDocsDir(path, docsDir string) (string, error) {
	rel, err := filepath.Rel(docsDir, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside %s", path, docsDir)
	}
	return filepath.ToSlash(rel), nil
}
