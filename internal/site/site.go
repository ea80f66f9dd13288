// Package site wires generated documentation into an MkDocs site: it writes
// the mkdocs.yml skeleton, keeps the nav in sync with generated pages, and
// shells out to the external mkdocs binary for builds.
package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/thedocproject/thedoc/internal/docgen"
	"github.com/thedocproject/thedoc/internal/scan"
)

// ErrMkDocsNotFound is returned when the mkdocs binary is not on PATH.
var ErrMkDocsNotFound = errors.New("mkdocs binary not found")

// MkDocsConfig mirrors the subset of mkdocs.yml that thedoc manages.
type MkDocsConfig struct {
	SiteName string     `yaml:"site_name"`
	DocsDir  string     `yaml:"docs_dir"`
	Theme    string     `yaml:"theme"`
	Nav      []NavEntry `yaml:"nav,omitempty"`
}

// NavEntry is one nav item: a title mapped to a page path.
type NavEntry map[string]string

// Site manages the mkdocs.yml in one directory.
type Site struct {
	// Dir holds mkdocs.yml.
	Dir string
}

// New creates a Site rooted at dir.
func New(dir string) *Site {
	if dir == "" {
		dir = "."
	}
	return &Site{Dir: dir}
}

// ConfigPath returns the path of the managed mkdocs.yml.
func (s *Site) ConfigPath() string {
	return filepath.Join(s.Dir, "mkdocs.yml")
}

// Scaffold writes a fresh mkdocs.yml. It refuses to overwrite an existing
// file unless force is set.
func (s *Site) Scaffold(siteName, docsDir string, force bool) error {
	path := s.ConfigPath()
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if siteName == "" {
		siteName = "Documentation"
	}
	cfg := MkDocsConfig{
		SiteName: siteName,
		DocsDir:  docsDir,
		Theme:    "mkdocs",
		Nav: []NavEntry{
			{"Home": "index.md"},
		},
	}
	return s.write(cfg)
}

// SyncNav rewrites the nav section from the scanned files, keeping the index
// page first and entries sorted by page path. Release notes, when present on
// disk, stay as the last entry.
func (s *Site) SyncNav(docs []scan.FileDoc, releaseNotesPage string) error {
	cfg, err := s.read()
	if err != nil {
		return err
	}

	nav := []NavEntry{{"Home": "index.md"}}

	pages := make([]string, 0, len(docs))
	for _, doc := range docs {
		pages = append(pages, docgen.PagePath(doc.Path))
	}
	sort.Strings(pages)
	for _, page := range pages {
		nav = append(nav, NavEntry{page: page})
	}

	if releaseNotesPage != "" {
		nav = append(nav, NavEntry{"Release Notes": releaseNotesPage})
	}

	cfg.Nav = nav
	return s.write(cfg)
}

// Build runs the external mkdocs binary against the managed config.
func (s *Site) Build(ctx context.Context) error {
	mkdocs, err := exec.LookPath("mkdocs")
	if err != nil {
		return ErrMkDocsNotFound
	}

	cmd := exec.CommandContext(ctx, mkdocs, "build", "--config-file", s.ConfigPath())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mkdocs build failed: %w", err)
	}
	return nil
}

// read loads the managed mkdocs.yml.
func (s *Site) read() (MkDocsConfig, error) {
	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		return MkDocsConfig{}, fmt.Errorf("reading %s: %w", s.ConfigPath(), err)
	}

	var cfg MkDocsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MkDocsConfig{}, fmt.Errorf("parsing %s: %w", s.ConfigPath(), err)
	}
	return cfg, nil
}

// write marshals and writes the managed mkdocs.yml.
func (s *Site) write(cfg MkDocsConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling mkdocs config: %w", err)
	}
	if err := os.WriteFile(s.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.ConfigPath(), err)
	}
	return nil
}
