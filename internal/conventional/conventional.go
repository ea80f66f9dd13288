// Package conventional parses commit messages following the Conventional
// Commits convention (https://www.conventionalcommits.org/). Parsing is a pure
// function of the message text: malformed messages are never an error, they
// classify as TypeOther so that every commit surfaces in the output.
package conventional

import (
	"regexp"
	"strings"
)

// Type is a conventional commit change type (the token before the colon).
type Type string

// The fixed type vocabulary. Callers can extend it via NewParser.
const (
	TypeFeat     Type = "feat"
	TypeFix      Type = "fix"
	TypeDocs     Type = "docs"
	TypeStyle    Type = "style"
	TypeRefactor Type = "refactor"
	TypePerf     Type = "perf"
	TypeTest     Type = "test"
	TypeChore    Type = "chore"
	TypeBuild    Type = "build"
	TypeCI       Type = "ci"
	TypeRevert   Type = "revert"

	// TypeOther is the fallback classification for messages that do not
	// match the conventional pattern or use an unrecognized type.
	TypeOther Type = "other"
)

// DefaultTypes returns the built-in type vocabulary in declaration order.
func DefaultTypes() []Type {
	return []Type{
		TypeFeat, TypeFix, TypeDocs, TypeStyle, TypeRefactor, TypePerf,
		TypeTest, TypeChore, TypeBuild, TypeCI, TypeRevert,
	}
}

// ParsedCommit is the structured form of one commit message.
// Exactly one ParsedCommit is produced per message; no input is dropped.
type ParsedCommit struct {
	// Type is the recognized change type, or TypeOther for unrecognized
	// or malformed subjects.
	Type Type
	// Scope is the optional parenthesized scope, empty when absent.
	Scope string
	// Description is the subject text after the colon, or the full first
	// line for messages classified as TypeOther.
	Description string
	// Body is the message text after the first blank line, if any.
	Body string
	// Breaking is set by a "!" before the colon or a "BREAKING CHANGE:"
	// footer in the body, regardless of Type.
	Breaking bool
}

// subjectPattern matches "<type>[(<scope>)][!]: <description>".
var subjectPattern = regexp.MustCompile(`^([A-Za-z]+)(?:\(([^()]*)\))?(!)?:\s+(.+)$`)

// breakingFooterPrefixes mark a breaking change in the commit body.
// The hyphenated form is the footer token spelling from the spec.
var breakingFooterPrefixes = []string{"BREAKING CHANGE:", "BREAKING-CHANGE:"}

// Parser classifies commit messages against a recognized-type vocabulary.
// The vocabulary is fixed at construction; Parser is safe for concurrent use.
type Parser struct {
	types map[Type]struct{}
}

// NewParser returns a Parser recognizing the default vocabulary plus any
// caller-supplied extension types.
func NewParser(extensions ...Type) *Parser {
	types := make(map[Type]struct{})
	for _, t := range DefaultTypes() {
		types[t] = struct{}{}
	}
	for _, t := range extensions {
		if t != "" {
			types[Type(strings.ToLower(string(t)))] = struct{}{}
		}
	}
	return &Parser{types: types}
}

// Parse produces the ParsedCommit for a full commit message (subject line
// plus optional body). It never fails: messages that do not match the
// conventional pattern yield TypeOther with the full first line as the
// description.
func (p *Parser) Parse(message string) ParsedCommit {
	subject, body := splitMessage(message)

	parsed := ParsedCommit{
		Type:        TypeOther,
		Description: subject,
		Body:        body,
	}

	if m := subjectPattern.FindStringSubmatch(subject); m != nil {
		typ := Type(strings.ToLower(m[1]))
		if _, ok := p.types[typ]; ok {
			parsed.Type = typ
			parsed.Scope = m[2]
			parsed.Description = m[4]
			parsed.Breaking = m[3] == "!"
		}
	}

	if hasBreakingFooter(body) {
		parsed.Breaking = true
	}

	return parsed
}

// splitMessage separates the subject line from the body. The body starts
// after the first blank line, matching git's commit message convention.
func splitMessage(message string) (subject, body string) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	subject, rest, found := strings.Cut(message, "\n")
	subject = strings.TrimSpace(subject)
	if !found {
		return subject, ""
	}
	return subject, strings.TrimSpace(rest)
}

// hasBreakingFooter reports whether any body line starts with a breaking
// change footer token.
func hasBreakingFooter(body string) bool {
	if body == "" {
		return false
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range breakingFooterPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				return true
			}
		}
	}
	return false
}
