package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsearch/pkg/types"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Parsing URLs</title>
  <style>body { color: red; }</style>
</head>
<body>
  <nav><a href="/">Home</a></nav>
  <h1>URL parsing</h1>
  <p>Use <code>url.Parse</code> to parse
     a URL.</p>
  <h2>Errors</h2>
  <p>Invalid input returns an error.</p>
  <script>console.log("ignored")</script>
</body>
</html>`

func TestHTML_Extract(t *testing.T) {
	res, err := HTML().Extract(context.Background(), types.Doc{ID: 1, Text: samplePage})
	require.NoError(t, err)

	assert.Equal(t, "Parsing URLs", res.Title)
	assert.True(t, res.Markdown)
	assert.Equal(t, "# URL parsing\n\nUse url.Parse to parse a URL.\n\n## Errors\n\nInvalid input returns an error.", res.Content)
	assert.Contains(t, res.TextContent, "Invalid input returns an error.")
	assert.NotContains(t, res.TextContent, "console.log")
	assert.NotContains(t, res.TextContent, "color: red")
	assert.NotContains(t, res.TextContent, "Home")
	assert.NotContains(t, res.TextContent, "#")
}

func TestHTML_TitleFallsBackToH1(t *testing.T) {
	res, err := HTML().Extract(context.Background(), types.Doc{Text: "<body><h1>Heading One</h1><p>x</p></body>"})
	require.NoError(t, err)
	assert.Equal(t, "Heading One", res.Title)
}

func TestMarkdown_Extract(t *testing.T) {
	doc := types.Doc{ID: 2, Text: "## Setup\n\nInstall it.\n\n# Guide *intro*\n\nRead this.\n\n```go\nfmt.Println(1)\n```\n"}
	res, err := Markdown().Extract(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "Guide intro", res.Title)
	assert.Equal(t, doc.Text, res.Content)
	assert.True(t, res.Markdown)
	assert.Contains(t, res.TextContent, "Install it.")
	assert.Contains(t, res.TextContent, "fmt.Println(1)")
	assert.NotContains(t, res.TextContent, "##")
}

func TestMarkdown_NoHeadings(t *testing.T) {
	res, err := Markdown().Extract(context.Background(), types.Doc{Text: "just text"})
	require.NoError(t, err)
	assert.Empty(t, res.Title)
	assert.False(t, res.Markdown)
	assert.Equal(t, "just text", res.TextContent)
}

func TestAuto(t *testing.T) {
	ctx := context.Background()
	e := Auto()

	res, err := e.Extract(ctx, types.Doc{Text: samplePage})
	require.NoError(t, err)
	assert.Equal(t, "Parsing URLs", res.Title)

	res, err = e.Extract(ctx, types.Doc{Text: "# Markdown Title\n\nbody"})
	require.NoError(t, err)
	assert.Equal(t, "Markdown Title", res.Title)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		wantID string
		err    bool
	}{
		{"", NoneID, false},
		{"none", NoneID, false},
		{"html", "html/v1", false},
		{"markdown", "markdown/v1", false},
		{"AUTO", "auto/v1", false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.name)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownExtractor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, ID(e))
		})
	}
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HTML().Extract(ctx, types.Doc{Text: "<p>x</p>"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = Markdown().Extract(ctx, types.Doc{Text: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
