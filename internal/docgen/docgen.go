// Package docgen renders scanned documentation into Markdown pages. Output
// is a pure function of its input: the same scan results always produce
// byte-identical pages, so regenerating into a clean directory is a no-op
// for version control.
package docgen

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/thedocproject/thedoc/internal/scan"
)

// Generator writes Markdown API reference pages.
type Generator struct {
	title string
}

// Option configures a Generator.
type Option func(*Generator)

// WithTitle sets the index page title. Defaults to "API Reference".
func WithTitle(title string) Option {
	return func(g *Generator) {
		if title != "" {
			g.title = title
		}
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{title: "API Reference"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WriteAll renders one page per scanned file plus an index page into outDir,
// creating directories as needed. Page paths mirror the source tree with the
// extension replaced by ".md".
func (g *Generator) WriteAll(docs []scan.FileDoc, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, doc := range docs {
		rel := PagePath(doc.Path)
		full := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(full, []byte(g.RenderPage(doc)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
	}

	index := filepath.Join(outDir, "index.md")
	if err := os.WriteFile(index, []byte(g.RenderIndex(docs)), 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// PagePath maps a source file path to its Markdown page path.
func PagePath(sourcePath string) string {
	ext := path.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + ".md"
}

// RenderPage renders the reference page for one source file.
func (g *Generator) RenderPage(doc scan.FileDoc) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", doc.Path)

	for _, item := range doc.Items {
		fmt.Fprintf(&b, "\n## %s\n\n", item.Name)
		fmt.Fprintf(&b, "`%s`\n", item.Kind)

		if item.Description != "" {
			fmt.Fprintf(&b, "\n%s\n", item.Description)
		}

		if len(item.Params) > 0 {
			b.WriteString("\n**Parameters:**\n\n")
			for _, p := range item.Params {
				if p.Description != "" {
					fmt.Fprintf(&b, "- `%s`: %s\n", p.Name, p.Description)
				} else {
					fmt.Fprintf(&b, "- `%s`\n", p.Name)
				}
			}
		}

		if item.Returns != "" {
			fmt.Fprintf(&b, "\n**Returns:** %s\n", item.Returns)
		}

		for _, throws := range item.Throws {
			fmt.Fprintf(&b, "\n**Throws:** %s\n", throws)
		}

		for _, example := range item.Examples {
			fmt.Fprintf(&b, "\n**Example:**\n\n```%s\n%s\n```\n", doc.Language, example)
		}
	}

	return b.String()
}

// RenderIndex renders the index page linking every generated page.
func (g *Generator) RenderIndex(docs []scan.FileDoc) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", g.title)

	if len(docs) == 0 {
		b.WriteString("\nNo documented source files were found.\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "- [%s](%s) (%s, %d documented)\n",
			doc.Path, PagePath(doc.Path), doc.Language, len(doc.Items))
	}
	return b.String()
}
