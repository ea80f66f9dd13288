// Package config provides hierarchical configuration for thedoc using koanf.
// Values are loaded with priority: environment variables > project config
// (thedoc.yml) > user config (~/.config/thedoc/config.yml) > defaults. A
// legacy JSON project config (thedoc.json) is still read, with a migration
// warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the thedoc settings after all layers are merged.
type Configuration struct {
	// ProjectName names the project in generated pages and the site config.
	ProjectName string `koanf:"project_name"`

	// OutputDir is where generated Markdown is written.
	OutputDir string `koanf:"output_dir" validate:"required"`

	// SiteDir is the directory holding mkdocs.yml.
	SiteDir string `koanf:"site_dir" validate:"required"`

	// ExcludePatterns are path segments skipped while scanning sources.
	ExcludePatterns []string `koanf:"exclude_patterns"`

	// Languages restricts which doc-comment parsers run.
	Languages []string `koanf:"languages" validate:"dive,oneof=swift kotlin dotnet"`

	// ReleaseNotes configures the release-notes command.
	ReleaseNotes ReleaseNotesConfig `koanf:"release_notes"`
}

// ReleaseNotesConfig configures commit classification and output.
type ReleaseNotesConfig struct {
	// Output is the default path of the generated document.
	Output string `koanf:"output" validate:"required"`

	// Types extends the conventional-commit vocabulary (e.g. "deps").
	Types []string `koanf:"types"`

	// Labels overrides section headings per commit type.
	Labels map[string]string `koanf:"labels"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: thedoc.yml).
	ProjectConfigPath string
	// WarningWriter receives migration warnings (default: os.Stderr).
	WarningWriter io.Writer
	// SkipWarnings suppresses migration warnings.
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: environment variables > project config > user config > defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("THEDOC_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadUserConfig merges the user-level YAML config when it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	return loadYAMLConfig(k, path, "user")
}

// loadProjectConfig merges the project-level config: YAML preferred, legacy
// JSON supported with a warning.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	switch {
	case fileExists(yamlPath):
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return err
		}
		if fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: legacy JSON config at %s is ignored (using %s)\n", legacyPath, yamlPath)
		}
	case fileExists(legacyPath):
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'thedoc init' to create %s and delete the JSON file.\n", yamlPath)
		}
	}
	return nil
}

// loadYAMLConfig validates syntax first so parse errors carry line numbers.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading %s config %s: %w", configType, path, err)
	}
	return nil
}

// fileExists returns true if the file exists and is statable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: THEDOC_OUTPUT_DIR -> output_dir.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "THEDOC_"))
}
