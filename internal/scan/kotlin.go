package scan

import (
	"regexp"
	"strings"
)

// KotlinParser extracts KDoc comments: "/** */" blocks with @param, @return,
// @throws and @property tags, attached to the declaration that follows.
type KotlinParser struct{}

// NewKotlinParser returns a parser for Kotlin source files.
func NewKotlinParser() *KotlinParser {
	return &KotlinParser{}
}

func (p *KotlinParser) Language() string { return "kotlin" }

func (p *KotlinParser) Extensions() []string { return []string{".kt", ".kts"} }

var (
	kotlinEnumClass    = regexp.MustCompile(`enum\s+class\s+(\w+)`)
	kotlinGenericClass = regexp.MustCompile(`class\s+(\w+)\s*<`)
	kotlinInterface    = regexp.MustCompile(`interface\s+(\w+)`)
	kotlinObject       = regexp.MustCompile(`object\s+(\w+)`)
	kotlinClass        = regexp.MustCompile(`class\s+(\w+)`)
	kotlinFun          = regexp.MustCompile(`fun\s+(?:<[^>]*>\s+)?(\w+)`)
	kotlinProperty     = regexp.MustCompile(`(?:val|var)\s+(\w+)`)

	kotlinTag = regexp.MustCompile(`^@(\w+)\s*(.*)$`)
)

// Parse extracts documented elements from Kotlin source.
func (p *KotlinParser) Parse(content []byte) []DocItem {
	lines := strings.Split(string(content), "\n")
	var items []DocItem

	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(strings.TrimSpace(lines[i]), "/**") {
			i++
			continue
		}

		var docLines []string
		docLines, i = collectBlockComment(lines, i)

		// Annotation lines sit between the KDoc and its declaration.
		for i < len(lines) {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == "" || strings.HasPrefix(trimmed, "@") {
				i++
				continue
			}
			break
		}
		if i >= len(lines) {
			break
		}

		codeLine := lines[i]
		if strings.HasPrefix(strings.TrimSpace(codeLine), "/**") {
			continue
		}
		i++

		kind, name := detectKotlinElement(codeLine)
		if kind == "" {
			continue
		}

		item := parseKDoc(docLines)
		item.Kind = kind
		item.Name = name
		items = append(items, item)
	}

	return items
}

// detectKotlinElement identifies the declaration following a KDoc block.
// Generic classes are reported as types, same as the Swift parser.
func detectKotlinElement(codeLine string) (Kind, string) {
	if m := kotlinEnumClass.FindStringSubmatch(codeLine); m != nil {
		return KindEnum, m[1]
	}
	if m := kotlinGenericClass.FindStringSubmatch(codeLine); m != nil {
		return KindType, m[1]
	}
	if m := kotlinInterface.FindStringSubmatch(codeLine); m != nil {
		return KindInterface, m[1]
	}
	if m := kotlinObject.FindStringSubmatch(codeLine); m != nil {
		return KindClass, m[1]
	}
	if m := kotlinClass.FindStringSubmatch(codeLine); m != nil {
		return KindClass, m[1]
	}
	if m := kotlinFun.FindStringSubmatch(codeLine); m != nil {
		return KindFunction, m[1]
	}
	if m := kotlinProperty.FindStringSubmatch(codeLine); m != nil {
		return KindProperty, m[1]
	}
	return "", ""
}

// parseKDoc interprets cleaned KDoc lines: the description runs until the
// first block tag; tag bodies continue on following lines until the next tag.
func parseKDoc(docLines []string) DocItem {
	var item DocItem
	var description []string

	// Pending tag being accumulated across continuation lines.
	var tagName, tagArg string
	var tagBody []string

	flush := func() {
		body := strings.TrimSpace(strings.Join(tagBody, " "))
		switch tagName {
		case "param":
			item.Params = append(item.Params, Param{Name: tagArg, Description: body})
		case "property":
			item.Params = append(item.Params, Param{Name: tagArg, Description: body})
		case "return":
			item.Returns = body
		case "throws", "exception":
			text := tagArg
			if body != "" {
				text += ": " + body
			}
			item.Throws = append(item.Throws, text)
		case "sample":
			item.Examples = append(item.Examples, strings.TrimSpace(tagArg+" "+body))
		}
		tagName, tagArg, tagBody = "", "", nil
	}

	for _, line := range docLines {
		trimmed := strings.TrimSpace(line)

		if m := kotlinTag.FindStringSubmatch(trimmed); m != nil {
			flush()
			tagName = m[1]
			rest := strings.TrimSpace(m[2])
			switch tagName {
			case "param", "property", "throws", "exception", "sample":
				// First word is the name the tag refers to.
				tagArg, rest, _ = strings.Cut(rest, " ")
			}
			if rest != "" {
				tagBody = append(tagBody, strings.TrimSpace(rest))
			}
			continue
		}

		if tagName != "" {
			if trimmed != "" {
				tagBody = append(tagBody, trimmed)
			}
			continue
		}

		description = append(description, line)
	}
	flush()

	item.Description = strings.TrimSpace(strings.Join(description, "\n"))
	return item
}
