package config

// GetDefaultConfigTemplate returns a commented config template written by
// 'thedoc init' so users can see every available option.
func GetDefaultConfigTemplate(projectName string) string {
	return `# thedoc configuration
# Priority: THEDOC_* environment variables > thedoc.yml > user config > defaults

project_name: "` + projectName + `"

# Output settings
output_dir: docs                    # Directory for generated Markdown
site_dir: .                         # Directory holding mkdocs.yml

# Scan settings
exclude_patterns:                   # Path segments skipped while scanning
  - node_modules
  - build
  - .build
  - bin
  - obj
languages:                          # Doc-comment parsers to run
  - swift
  - kotlin
  - dotnet

# Release notes settings
release_notes:
  output: docs/release-notes.md     # Default output document
  types: []                         # Extra commit types (e.g. deps)
  labels: {}                        # Section heading overrides per type
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project_name": "",
		"output_dir":   "docs",
		"site_dir":     ".",
		// exclude_patterns: build output and dependency directories that
		// commonly contain generated or vendored sources.
		"exclude_patterns": []string{"node_modules", "build", ".build", "bin", "obj"},
		"languages":        []string{"swift", "kotlin", "dotnet"},
		"release_notes": map[string]interface{}{
			"output": "docs/release-notes.md",
			"types":  []string{},
			"labels": map[string]string{},
		},
	}
}
