package scan

import (
	"regexp"
	"strings"
)

// SwiftParser extracts Swift documentation comments: both "///" line blocks
// and "/** */" blocks, with the standard markup tags ("- Parameters:",
// "- Returns:", "- Throws:") and "## Example" sections containing fenced
// swift code.
type SwiftParser struct{}

// NewSwiftParser returns a parser for Swift source files.
func NewSwiftParser() *SwiftParser {
	return &SwiftParser{}
}

func (p *SwiftParser) Language() string { return "swift" }

func (p *SwiftParser) Extensions() []string { return []string{".swift"} }

var (
	swiftGenericClass = regexp.MustCompile(`class\s+(\w+)\s*<`)
	swiftEnum         = regexp.MustCompile(`enum\s+(\w+)`)
	swiftCase         = regexp.MustCompile(`^\s*(?:indirect\s+)?case\s+(\w+)`)
	swiftFunc         = regexp.MustCompile(`func\s+([A-Za-z_]\w*)`)
	swiftClass        = regexp.MustCompile(`class\s+(\w+)`)
	swiftProperty     = regexp.MustCompile(`(?:var|let)\s+(\w+)`)
)

// Parse extracts documented elements from Swift source.
func (p *SwiftParser) Parse(content []byte) []DocItem {
	lines := strings.Split(string(content), "\n")
	var items []DocItem

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		var docLines []string
		switch {
		case strings.HasPrefix(trimmed, "///"):
			for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "///") {
				docLines = append(docLines, stripLinePrefix(lines[i], "///"))
				i++
			}
		case strings.HasPrefix(trimmed, "/**"):
			docLines, i = collectBlockComment(lines, i)
		default:
			i++
			continue
		}

		// Skip blank lines between the doc block and its code line.
		for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
			i++
		}
		if i >= len(lines) {
			break
		}

		codeLine := lines[i]
		if isSwiftDocStart(codeLine) {
			continue // Another doc block follows; this one is dangling.
		}
		i++

		kind, name := detectSwiftElement(codeLine)
		if kind == "" {
			continue
		}

		item := parseSwiftDocBlock(docLines)
		item.Kind = kind
		item.Name = name
		items = append(items, item)
	}

	return items
}

// collectBlockComment gathers the lines of a "/** */" comment starting at
// index start. It returns the cleaned lines and the index after the block.
func collectBlockComment(lines []string, start int) ([]string, int) {
	var docLines []string
	i := start
	for i < len(lines) {
		line := lines[i]
		i++

		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "/**")
		done := false
		if idx := strings.Index(line, "*/"); idx >= 0 {
			line = line[:idx]
			done = true
		}
		line = strings.TrimPrefix(strings.TrimSpace(line), "*")
		docLines = append(docLines, strings.TrimPrefix(line, " "))

		if done {
			return docLines, i
		}
	}
	return docLines, i
}

func isSwiftDocStart(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "///") || strings.HasPrefix(trimmed, "/**")
}

// stripLinePrefix removes the comment marker and at most one following space.
func stripLinePrefix(line, marker string) string {
	stripped := strings.TrimPrefix(strings.TrimSpace(line), marker)
	return strings.TrimPrefix(stripped, " ")
}

// detectSwiftElement identifies the code element on the line following a doc
// block. Generic classes are reported as types, matching how Swift API docs
// group them.
func detectSwiftElement(codeLine string) (Kind, string) {
	if m := swiftGenericClass.FindStringSubmatch(codeLine); m != nil {
		return KindType, m[1]
	}
	if m := swiftEnum.FindStringSubmatch(codeLine); m != nil {
		return KindEnum, m[1]
	}
	if m := swiftCase.FindStringSubmatch(codeLine); m != nil {
		return KindCase, m[1]
	}
	if m := swiftFunc.FindStringSubmatch(codeLine); m != nil {
		return KindFunction, m[1]
	}
	if m := swiftClass.FindStringSubmatch(codeLine); m != nil {
		return KindClass, m[1]
	}
	if m := swiftProperty.FindStringSubmatch(codeLine); m != nil {
		return KindProperty, m[1]
	}
	return "", ""
}

var swiftParamItem = regexp.MustCompile(`^-\s*(\w+)\s*:\s*(.*)$`)

// parseSwiftDocBlock interprets the cleaned doc lines: leading description,
// then markup tags, then "## Example" sections.
func parseSwiftDocBlock(docLines []string) DocItem {
	var item DocItem
	var description []string

	const (
		stateDescription = iota
		stateParameters
		stateExample
	)
	state := stateDescription
	var example []string
	inFence := false

	for _, line := range docLines {
		trimmed := strings.TrimSpace(line)

		if state == stateExample {
			switch {
			case strings.HasPrefix(trimmed, "```"):
				if inFence {
					item.Examples = append(item.Examples, strings.TrimRight(strings.Join(example, "\n"), "\n"))
					example = nil
				}
				inFence = !inFence
			case inFence:
				example = append(example, line)
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "## "):
			if strings.EqualFold(strings.TrimPrefix(trimmed, "## "), "example") {
				state = stateExample
			}
		case hasSwiftTag(trimmed, "Parameters"):
			state = stateParameters
		case hasSwiftTag(trimmed, "Parameter"):
			rest := tagValue(trimmed, "Parameter")
			if name, desc, ok := strings.Cut(rest, ":"); ok {
				item.Params = append(item.Params, Param{
					Name:        strings.TrimSpace(name),
					Description: strings.TrimSpace(desc),
				})
			}
			state = stateDescription
		case hasSwiftTag(trimmed, "Returns"):
			item.Returns = tagValue(trimmed, "Returns")
			state = stateDescription
		case hasSwiftTag(trimmed, "Throws"):
			item.Throws = append(item.Throws, tagValue(trimmed, "Throws"))
			state = stateDescription
		case state == stateParameters:
			if m := swiftParamItem.FindStringSubmatch(trimmed); m != nil {
				item.Params = append(item.Params, Param{Name: m[1], Description: strings.TrimSpace(m[2])})
			} else if trimmed != "" {
				state = stateDescription
				description = append(description, line)
			}
		default:
			description = append(description, line)
		}
	}

	item.Description = strings.TrimSpace(strings.Join(description, "\n"))
	return item
}

// hasSwiftTag reports whether the line is a "- Tag:" markup line.
func hasSwiftTag(line, tag string) bool {
	if !strings.HasPrefix(line, "-") {
		return false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, "-"))
	if !strings.HasPrefix(rest, tag) {
		return false
	}
	rest = rest[len(tag):]
	return strings.HasPrefix(strings.TrimSpace(rest), ":")
}

// tagValue returns the text after "- Tag:".
func tagValue(line, tag string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(line, "-")), tag))
	return strings.TrimSpace(strings.TrimPrefix(rest, ":"))
}
