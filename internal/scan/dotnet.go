package scan

import (
	"encoding/xml"
	"regexp"
	"strings"
)

// DotNetParser extracts "///" XML documentation comments from C# and VB
// source. Each block is joined and parsed as XML; blocks that fail to parse
// are skipped rather than aborting the file.
type DotNetParser struct{}

// NewDotNetParser returns a parser for .NET source files.
func NewDotNetParser() *DotNetParser {
	return &DotNetParser{}
}

func (p *DotNetParser) Language() string { return "dotnet" }

func (p *DotNetParser) Extensions() []string { return []string{".cs", ".vb"} }

var (
	dotnetMethod    = regexp.MustCompile(`\b(\w+)\s*\(`)
	dotnetClass     = regexp.MustCompile(`\bclass\s+(\w+)`)
	dotnetInterface = regexp.MustCompile(`\binterface\s+(\w+)`)
	dotnetEnum      = regexp.MustCompile(`\benum\s+(\w+)`)
	dotnetStruct    = regexp.MustCompile(`\b(?:struct|record)\s+(\w+)`)
	dotnetMember    = regexp.MustCompile(`\b(\w+)\s*(?:\{|=|;)`)
)

// dotnetDoc is the decoded XML of one doc block wrapped in a synthetic root.
type dotnetDoc struct {
	Summary    string       `xml:"summary"`
	Remarks    string       `xml:"remarks"`
	Returns    string       `xml:"returns"`
	Value      string       `xml:"value"`
	Params     []dotnetPart    `xml:"param"`
	TypeParams []dotnetPart    `xml:"typeparam"`
	Exceptions []dotnetPart    `xml:"exception"`
	Examples   []dotnetExample `xml:"example"`
}

type dotnetPart struct {
	Name string `xml:"name,attr"`
	Cref string `xml:"cref,attr"`
	Text string `xml:",chardata"`
}

// dotnetExample holds an <example> block, whose snippet usually lives in a
// nested <code> element.
type dotnetExample struct {
	Text string   `xml:",chardata"`
	Code []string `xml:"code"`
}

// Parse extracts documented elements from .NET source.
func (p *DotNetParser) Parse(content []byte) []DocItem {
	lines := strings.Split(string(content), "\n")
	var items []DocItem

	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(strings.TrimSpace(lines[i]), "///") {
			i++
			continue
		}

		var docLines []string
		for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "///") {
			docLines = append(docLines, stripLinePrefix(lines[i], "///"))
			i++
		}

		// Attribute lines may sit between the doc block and the declaration.
		for i < len(lines) {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == "" || strings.HasPrefix(trimmed, "[") {
				i++
				continue
			}
			break
		}
		if i >= len(lines) {
			break
		}

		codeLine := lines[i]
		if strings.HasPrefix(strings.TrimSpace(codeLine), "///") {
			continue
		}
		i++

		kind, name := detectDotNetElement(codeLine)
		if kind == "" {
			continue
		}

		item, ok := parseDotNetDoc(docLines)
		if !ok {
			continue
		}
		item.Kind = kind
		item.Name = name
		items = append(items, item)
	}

	return items
}

// detectDotNetElement identifies the declaration following a doc block.
// Structs and records are reported as types; members with a body, setter or
// initializer as properties.
func detectDotNetElement(codeLine string) (Kind, string) {
	if m := dotnetClass.FindStringSubmatch(codeLine); m != nil {
		return KindClass, m[1]
	}
	if m := dotnetInterface.FindStringSubmatch(codeLine); m != nil {
		return KindInterface, m[1]
	}
	if m := dotnetEnum.FindStringSubmatch(codeLine); m != nil {
		return KindEnum, m[1]
	}
	if m := dotnetStruct.FindStringSubmatch(codeLine); m != nil {
		return KindType, m[1]
	}
	if m := dotnetMethod.FindStringSubmatch(codeLine); m != nil {
		return KindFunction, m[1]
	}
	if m := dotnetMember.FindStringSubmatch(codeLine); m != nil {
		return KindProperty, m[1]
	}
	return "", ""
}

// parseDotNetDoc decodes one joined doc block. The lines are wrapped in a
// synthetic root element because a block holds sibling tags, not a single
// document.
func parseDotNetDoc(docLines []string) (DocItem, bool) {
	raw := "<doc>" + strings.Join(docLines, "\n") + "</doc>"

	var doc dotnetDoc
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return DocItem{}, false
	}

	item := DocItem{
		Description: collapseSpace(doc.Summary),
		Returns:     collapseSpace(doc.Returns),
	}
	if remarks := collapseSpace(doc.Remarks); remarks != "" {
		if item.Description != "" {
			item.Description += "\n\n" + remarks
		} else {
			item.Description = remarks
		}
	}
	if item.Returns == "" {
		item.Returns = collapseSpace(doc.Value)
	}

	for _, p := range append(doc.TypeParams, doc.Params...) {
		item.Params = append(item.Params, Param{Name: p.Name, Description: collapseSpace(p.Text)})
	}
	for _, e := range doc.Exceptions {
		text := collapseSpace(e.Text)
		if e.Cref != "" {
			if text != "" {
				text = e.Cref + ": " + text
			} else {
				text = e.Cref
			}
		}
		if text != "" {
			item.Throws = append(item.Throws, text)
		}
	}
	for _, ex := range doc.Examples {
		if len(ex.Code) > 0 {
			for _, code := range ex.Code {
				if trimmed := trimIndentedBlock(code); trimmed != "" {
					item.Examples = append(item.Examples, trimmed)
				}
			}
			continue
		}
		if trimmed := trimIndentedBlock(ex.Text); trimmed != "" {
			item.Examples = append(item.Examples, trimmed)
		}
	}

	return item, true
}

// collapseSpace normalizes interior whitespace the way rendered XML docs do.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// trimIndentedBlock trims an example block while preserving line structure,
// so <code> snippets keep their line breaks.
func trimIndentedBlock(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
