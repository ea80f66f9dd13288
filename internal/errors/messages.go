package errors

import "fmt"

// Common error constructors for the thedoc CLI. Keeping the wording in one
// place keeps messages consistent across commands.

// NotAGitRepository creates an error for running outside a git repository.
func NotAGitRepository(path string) *CLIError {
	return NewRepositoryError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run thedoc from inside a git repository",
		"Or initialize one with: git init",
	)
}

// RevisionNotFound creates an error for an unresolvable revision.
func RevisionNotFound(revision string, err error) *CLIError {
	return WrapWithMessage(err, Repository,
		fmt.Sprintf("cannot resolve revision %q", revision),
		"Check the tag or branch name: git tag --list",
		"Revisions accept tags, branches, and commit hashes",
	)
}

// NoTagsFound creates an error for --since-tag style ranges in an untagged
// repository.
func NoTagsFound() *CLIError {
	return NewRepositoryError(
		"repository has no tags",
		"Create a tag first: git tag v0.1.0",
		"Or pass an explicit range with --from and --to",
	)
}

// OutputNotWritable creates an error when the output document cannot be
// written.
func OutputNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write output file: %s", path),
		"Check permissions on the output directory",
		"Choose another location with --output",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Reset to defaults with: thedoc init --force",
	)
}

// UnknownLanguage creates an error for an unsupported language in config.
func UnknownLanguage(language string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("unknown language: %s", language),
		"Supported languages: swift, kotlin, dotnet",
		"Edit the languages list in thedoc.yml",
	)
}

// MkDocsNotFound creates an error when the mkdocs binary is missing.
func MkDocsNotFound() *CLIError {
	return NewRuntimeError(
		"mkdocs command not found",
		"Install MkDocs: pip install mkdocs",
		"Verify installation with: mkdocs --version",
	)
}

// InvalidFlagCombination creates an error for incompatible flags.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'thedoc <command> --help' to see valid options",
	)
}
