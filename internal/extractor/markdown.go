package extractor

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dshills/docsearch/pkg/types"
)

type markdownExtractor struct {
	md goldmark.Markdown
}

// Markdown returns an extractor for markdown documents. The document is
// chunked as-is; the title is its first top-level heading.
func Markdown() Extractor {
	return &markdownExtractor{md: goldmark.New()}
}

func (m *markdownExtractor) ID() string { return "markdown/v1" }

func (m *markdownExtractor) Extract(ctx context.Context, doc types.Doc) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := []byte(doc.Text)
	root := m.md.Parser().Parse(text.NewReader(src))

	var (
		title      string
		titleLevel int
		headings   int
		parts      []string
	)

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			headings++
			if t := collapseSpace(inlineText(node, src)); t != "" && (title == "" || node.Level < titleLevel) {
				title, titleLevel = t, node.Level
			}
		case *ast.Text:
			parts = append(parts, string(node.Segment.Value(src)))
			return ast.WalkSkipChildren, nil
		case *ast.String:
			parts = append(parts, string(node.Value))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				parts = append(parts, string(seg.Value(src)))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Title:       title,
		Content:     doc.Text,
		TextContent: collapseSpace(strings.Join(parts, " ")),
		Markdown:    headings > 0,
	}, nil
}

// inlineText returns the text of the inline children of n
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			b.WriteByte(' ')
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
