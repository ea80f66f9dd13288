package docgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedocproject/thedoc/internal/scan"
)

func sampleDocs() []scan.FileDoc {
	return []scan.FileDoc{
		{
			Path:     "App/Client.swift",
			Language: "swift",
			Items: []scan.DocItem{
				{
					Name:        "APIClient",
					Kind:        scan.KindClass,
					Description: "A network client.",
				},
				{
					Name:        "send",
					Kind:        scan.KindFunction,
					Description: "Sends a request.",
					Params: []scan.Param{
						{Name: "endpoint", Description: "The path to call."},
					},
					Returns:  "The decoded response.",
					Throws:   []string{"NetworkError if the request fails."},
					Examples: []string{`client.send(endpoint: "/users")`},
				},
			},
		},
		{
			Path:     "core/Service.kt",
			Language: "kotlin",
			Items: []scan.DocItem{
				{Name: "Service", Kind: scan.KindClass, Description: "Core service."},
			},
		},
	}
}

func TestPagePath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		source string
		want   string
	}{
		"swift file":       {source: "App/Client.swift", want: "App/Client.md"},
		"nested kotlin":    {source: "a/b/c/Service.kt", want: "a/b/c/Service.md"},
		"no extension":     {source: "Makefile", want: "Makefile.md"},
		"dot in directory": {source: "pkg.v2/Thing.cs", want: "pkg.v2/Thing.md"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, PagePath(tc.source))
		})
	}
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	page := NewGenerator().RenderPage(sampleDocs()[0])

	assert.Contains(t, page, "# App/Client.swift\n")
	assert.Contains(t, page, "## APIClient\n")
	assert.Contains(t, page, "`class`\n")
	assert.Contains(t, page, "## send\n")
	assert.Contains(t, page, "- `endpoint`: The path to call.\n")
	assert.Contains(t, page, "**Returns:** The decoded response.\n")
	assert.Contains(t, page, "**Throws:** NetworkError if the request fails.\n")
	assert.Contains(t, page, "```swift\nclient.send(endpoint: \"/users\")\n```\n")
}

func TestRenderPage_Deterministic(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	doc := sampleDocs()[0]
	assert.Equal(t, g.RenderPage(doc), g.RenderPage(doc))
}

func TestRenderIndex(t *testing.T) {
	t.Parallel()

	index := NewGenerator(WithTitle("My Project")).RenderIndex(sampleDocs())

	assert.Contains(t, index, "# My Project\n")
	assert.Contains(t, index, "- [App/Client.swift](App/Client.md) (swift, 2 documented)\n")
	assert.Contains(t, index, "- [core/Service.kt](core/Service.md) (kotlin, 1 documented)\n")
}

func TestRenderIndex_Empty(t *testing.T) {
	t.Parallel()

	index := NewGenerator().RenderIndex(nil)
	assert.Contains(t, index, "# API Reference\n")
	assert.Contains(t, index, "No documented source files were found.")
}

func TestWriteAll(t *testing.T) {
	t.Parallel()

	outDir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, NewGenerator().WriteAll(sampleDocs(), outDir))

	page, err := os.ReadFile(filepath.Join(outDir, "App", "Client.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "## APIClient")

	index, err := os.ReadFile(filepath.Join(outDir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[App/Client.swift](App/Client.md)")

	_, err = os.Stat(filepath.Join(outDir, "core", "Service.md"))
	assert.NoError(t, err)
}
