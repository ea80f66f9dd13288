package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thedocproject/thedoc/internal/config"
	"github.com/thedocproject/thedoc/internal/errors"
	"github.com/thedocproject/thedoc/internal/output"
	"github.com/thedocproject/thedoc/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the documentation site with MkDocs",
	Long: `Run the external mkdocs binary against the managed mkdocs.yml.

With --watch, source changes trigger a regenerate-and-rebuild cycle until
interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		watch, _ := cmd.Flags().GetBool("watch")
		return runBuild(cmd.Context(), cmd.OutOrStdout(), cfg, watch)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolP("watch", "w", false, "Rebuild when sources change")
}

func runBuild(ctx context.Context, out io.Writer, cfg *config.Configuration, watch bool) error {
	s := site.New(cfg.SiteDir)

	buildOnce := func() error {
		output.PrintExecutingCommand(out, "mkdocs build")
		if err := s.Build(ctx); err != nil {
			if stderrors.Is(err, site.ErrMkDocsNotFound) {
				return errors.MkDocsNotFound()
			}
			return errors.Wrap(err, errors.Runtime,
				"Run 'mkdocs build' directly to see the full error")
		}
		return nil
	}

	if err := buildOnce(); err != nil {
		return err
	}
	output.PrintSuccess(out, "site built")

	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	output.PrintStep(out, "Watching for changes (Ctrl+C to stop)")
	err := site.Watch(ctx, ".", cfg.ExcludePatterns, func(watchErr error) {
		if watchErr != nil {
			output.PrintWarning(out, watchErr.Error())
			return
		}
		if err := runGenerate(ctx, out, ".", cfg); err != nil {
			output.PrintWarning(out, err.Error())
			return
		}
		if err := buildOnce(); err != nil {
			output.PrintWarning(out, err.Error())
			return
		}
		output.PrintSuccess(out, "site rebuilt")
	})
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
