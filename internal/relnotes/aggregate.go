package relnotes

import "github.com/thedocproject/thedoc/internal/conventional"

// Aggregate partitions commits by type, preserving the relative input order
// within each group (stable partition, no secondary sort). Breaking commits
// are routed to the SectionBreaking group only, so they never show up twice.
// Types with no commits are absent from the returned map, and duplicate
// inputs are kept as-is: revert/duplicate detection is not this layer's job.
func Aggregate(commits []conventional.ParsedCommit) map[conventional.Type][]conventional.ParsedCommit {
	groups := make(map[conventional.Type][]conventional.ParsedCommit)

	for _, c := range commits {
		key := c.Type
		if c.Breaking {
			key = SectionBreaking
		}
		groups[key] = append(groups[key], c)
	}

	return groups
}
