// Package scan extracts documentation comments from source trees. A Scanner
// walks the repository, routes each file to a language parser by extension,
// and parses files concurrently. Parsers are pure functions of file content:
// malformed doc blocks are skipped, never fatal.
package scan

// Kind classifies the code element a doc comment is attached to.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindFunction  Kind = "function"
	KindProperty  Kind = "property"
	KindEnum      Kind = "enum"
	KindCase      Kind = "case"
	KindType      Kind = "type"
)

// Param is one documented parameter.
type Param struct {
	Name        string
	Description string
}

// DocItem is one documented code element extracted from a source file.
type DocItem struct {
	Name        string
	Kind        Kind
	Description string
	Params      []Param
	Returns     string
	Throws      []string
	Examples    []string
	// SourceFile is the path relative to the scan root, using forward
	// slashes on all platforms.
	SourceFile string
}

// FileDoc collects the documented elements of a single source file.
type FileDoc struct {
	// Path is the file path relative to the scan root.
	Path string
	// Language is the parser language name (e.g. "swift").
	Language string
	Items    []DocItem
}

// LanguageParser extracts doc items from source content of one language.
type LanguageParser interface {
	// Language returns the language name used in output and config.
	Language() string
	// Extensions returns the file extensions this parser handles,
	// including the leading dot.
	Extensions() []string
	// Parse extracts documented elements from file content.
	Parse(content []byte) []DocItem
}

// AllParsers returns the built-in language parsers.
func AllParsers() []LanguageParser {
	return []LanguageParser{
		NewSwiftParser(),
		NewKotlinParser(),
		NewDotNetParser(),
	}
}
