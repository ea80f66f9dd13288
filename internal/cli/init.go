package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thedocproject/thedoc/internal/config"
	"github.com/thedocproject/thedoc/internal/errors"
	"github.com/thedocproject/thedoc/internal/output"
	"github.com/thedocproject/thedoc/internal/site"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold thedoc configuration and site skeleton",
	Long: `Create thedoc.yml, the docs output directory, and an mkdocs.yml site
skeleton in the current directory.

Examples:
  thedoc init                   # Use the directory name as project name
  thedoc init --name "My App"   # Set an explicit project name
  thedoc init --force           # Overwrite existing files`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		force, _ := cmd.Flags().GetBool("force")
		return runInit(cmd.OutOrStdout(), name, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("name", "", "Project name (default: current directory name)")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing configuration")
}

func runInit(out io.Writer, projectName string, force bool) error {
	if projectName == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, errors.Runtime)
		}
		projectName = filepath.Base(cwd)
	}

	configPath := config.ProjectConfigPath()
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.NewConfigError(
			fmt.Sprintf("%s already exists", configPath),
			"Use --force to overwrite the existing configuration",
		)
	}

	template := config.GetDefaultConfigTemplate(projectName)
	if err := os.WriteFile(configPath, []byte(template), 0o644); err != nil {
		return errors.OutputNotWritable(configPath, err)
	}
	output.PrintSuccess(out, configPath)

	defaults := config.GetDefaults()
	docsDir := defaults["output_dir"].(string)
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return errors.OutputNotWritable(docsDir, err)
	}
	output.PrintSuccess(out, docsDir+string(os.PathSeparator))

	s := site.New(defaults["site_dir"].(string))
	if err := s.Scaffold(projectName, docsDir, force); err != nil {
		return errors.Wrap(err, errors.Runtime,
			"Remove the existing mkdocs.yml or rerun with --force")
	}
	output.PrintSuccess(out, s.ConfigPath())

	fmt.Fprintf(out, "\nNext: run 'thedoc generate' to build documentation.\n")
	return nil
}
