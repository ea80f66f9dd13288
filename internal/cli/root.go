// Package cli wires the thedoc command tree. Each command lives in its own
// file and registers itself on rootCmd in an init func.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thedocproject/thedoc/internal/config"
	"github.com/thedocproject/thedoc/internal/errors"
)

var (
	cfgFile string
	debug   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "thedoc",
	Short: "Generate documentation and release notes from your repository",
	Long: `thedoc scans a repository for documentation comments, generates Markdown
pages, and synthesizes release notes from conventional commits.

Start with 'thedoc init' to scaffold configuration, then 'thedoc generate'
to build documentation and 'thedoc release-notes' to produce release notes.`,
	// Errors are formatted once in Execute, not by cobra.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: thedoc.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the CLI and returns the process exit code. All errors are
// printed here, formatted, exactly once.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			errors.PrintError(cliErr)
			return exitCodeFor(cliErr.Category)
		}
		errors.PrintSimpleError(err, errors.Runtime)
		return ExitFailure
	}
	return ExitSuccess
}

// loadConfig loads the layered configuration, honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		path := cfgFile
		if path == "" {
			path = config.ProjectConfigPath()
		}
		return nil, errors.ConfigParseError(path, err)
	}
	return cfg, nil
}
