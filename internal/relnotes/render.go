package relnotes

import (
	"fmt"
	"io"
	"strings"

	"github.com/thedocproject/thedoc/internal/conventional"
)

// RenderMarkdown writes the grouped commits as a Markdown document:
// one "## <label>" section per present type, one bullet per commit.
// Section order is fixed by the config (BREAKING CHANGES first, Other
// last); within a section commits keep their input (chronological,
// oldest first) order. Output contains no timestamps or other run-varying
// content, so identical input renders byte-identically.
func RenderMarkdown(groups map[conventional.Type][]conventional.ParsedCommit, cfg Config, w io.Writer) error {
	if _, err := fmt.Fprint(w, "# Release Notes\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, typ := range sectionOrder(cfg) {
		commits, ok := groups[typ]
		if !ok || len(commits) == 0 {
			continue
		}
		if err := renderSection(cfg.Labels[typ], commits, w); err != nil {
			return fmt.Errorf("rendering section %s: %w", typ, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience wrapper rendering to a string.
func RenderMarkdownString(groups map[conventional.Type][]conventional.ParsedCommit, cfg Config) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(groups, cfg, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// sectionOrder returns the full render order: breaking, configured types,
// then the uncategorized bucket.
func sectionOrder(cfg Config) []conventional.Type {
	order := make([]conventional.Type, 0, len(cfg.Order)+2)
	order = append(order, SectionBreaking)
	order = append(order, cfg.Order...)
	order = append(order, conventional.TypeOther)
	return order
}

// renderSection writes one labeled section with its entries.
func renderSection(label string, commits []conventional.ParsedCommit, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n## %s\n\n", label); err != nil {
		return err
	}

	for _, c := range commits {
		if _, err := fmt.Fprintf(w, "- %s\n", FormatEntry(c)); err != nil {
			return err
		}
	}

	return nil
}

// FormatEntry renders one commit as a single line, combining the scope
// (when present) with the description.
func FormatEntry(c conventional.ParsedCommit) string {
	if c.Scope != "" {
		return fmt.Sprintf("**%s**: %s", c.Scope, c.Description)
	}
	return c.Description
}
