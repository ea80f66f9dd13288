// Package relnotes groups parsed conventional commits into sections and
// renders them as a release-notes document. Grouping is a stable partition
// and rendering is deterministic: the same input always yields byte-identical
// output, so regenerating notes for an unchanged revision range is a no-op
// diff-wise.
package relnotes

import "github.com/thedocproject/thedoc/internal/conventional"

// SectionBreaking is the pseudo-type that collects breaking commits.
// A breaking commit appears only here, never under its declared type.
const SectionBreaking conventional.Type = "breaking"

// Config is the immutable rendering configuration: section order and the
// type-to-label table. Callers extend it rather than mutating package state.
type Config struct {
	// Order lists the non-breaking sections in render order. TypeOther is
	// always rendered last and must not appear here.
	Order []conventional.Type
	// Labels maps each type (plus SectionBreaking and TypeOther) to its
	// human-readable section heading.
	Labels map[conventional.Type]string
}

// DefaultConfig returns the standard section order and labels:
// BREAKING CHANGES first, then Features, Bug Fixes, the remaining
// recognized types in declared order, and Other last.
func DefaultConfig() Config {
	return Config{
		Order: []conventional.Type{
			conventional.TypeFeat,
			conventional.TypeFix,
			conventional.TypePerf,
			conventional.TypeRevert,
			conventional.TypeDocs,
			conventional.TypeStyle,
			conventional.TypeRefactor,
			conventional.TypeTest,
			conventional.TypeBuild,
			conventional.TypeCI,
			conventional.TypeChore,
		},
		Labels: map[conventional.Type]string{
			SectionBreaking:           "BREAKING CHANGES",
			conventional.TypeFeat:     "Features",
			conventional.TypeFix:      "Bug Fixes",
			conventional.TypePerf:     "Performance Improvements",
			conventional.TypeRevert:   "Reverts",
			conventional.TypeDocs:     "Documentation",
			conventional.TypeStyle:    "Styles",
			conventional.TypeRefactor: "Code Refactoring",
			conventional.TypeTest:     "Tests",
			conventional.TypeBuild:    "Build System",
			conventional.TypeCI:       "Continuous Integration",
			conventional.TypeChore:    "Chores",
			conventional.TypeOther:    "Other",
		},
	}
}

// WithTypes returns a copy of the config with extension types appended to
// the section order (before Other) in the given order, and label overrides
// applied. Types already present keep their position.
func (c Config) WithTypes(types []conventional.Type, labels map[conventional.Type]string) Config {
	order := make([]conventional.Type, len(c.Order))
	copy(order, c.Order)

	known := make(map[conventional.Type]bool, len(order))
	for _, t := range order {
		known[t] = true
	}

	merged := make(map[conventional.Type]string, len(c.Labels)+len(labels))
	for t, l := range c.Labels {
		merged[t] = l
	}

	for _, t := range types {
		if t == "" || known[t] || t == SectionBreaking || t == conventional.TypeOther {
			continue
		}
		order = append(order, t)
		known[t] = true
		// Extension types default to their own name as the heading.
		if _, ok := merged[t]; !ok {
			merged[t] = string(t)
		}
	}

	for t, l := range labels {
		merged[t] = l
	}

	return Config{Order: order, Labels: merged}
}
