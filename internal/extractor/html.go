package extractor

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/docsearch/pkg/types"
)

type htmlExtractor struct{}

// HTML returns an extractor for HTML pages. Headings are rendered as
// markdown headings so the chunker splits the page into sections.
func HTML() Extractor {
	return htmlExtractor{}
}

func (htmlExtractor) ID() string { return "html/v1" }

// skipped elements never contribute text
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Svg:      true,
	atom.Nav:      true,
	atom.Footer:   true,
	atom.Head:     true,
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Li: true, atom.Pre: true, atom.Blockquote: true, atom.Tr: true,
	atom.Dt: true, atom.Dd: true, atom.Table: true, atom.Ul: true, atom.Ol: true,
	atom.Main: true, atom.Br: true,
}

func (htmlExtractor) Extract(ctx context.Context, doc types.Doc) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := html.Parse(strings.NewReader(doc.Text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML of doc %d: %w", doc.ID, err)
	}

	w := &htmlWalker{}
	w.walk(root)
	w.flush()

	title := w.title
	if title == "" {
		title = w.firstH1
	}

	return &Result{
		Title:       title,
		Content:     strings.Join(w.blocks, "\n\n"),
		TextContent: collapseSpace(strings.Join(w.plain, " ")),
		Markdown:    w.headings > 0,
	}, nil
}

type htmlWalker struct {
	title    string
	firstH1  string
	headings int
	blocks   []string
	plain    []string
	cur      strings.Builder
}

func (w *htmlWalker) flush() {
	if text := collapseSpace(w.cur.String()); text != "" {
		w.blocks = append(w.blocks, text)
		w.plain = append(w.plain, text)
	}
	w.cur.Reset()
}

func (w *htmlWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.cur.WriteString(n.Data)
		w.cur.WriteByte(' ')
		return
	case html.ElementNode:
		if n.DataAtom == atom.Title && w.title == "" {
			w.title = collapseSpace(textOf(n))
			return
		}
		if skipped[n.DataAtom] {
			// <head> holds <title>
			if n.DataAtom == atom.Head {
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && c.DataAtom == atom.Title {
						w.walk(c)
					}
				}
			}
			return
		}
		if level, ok := headingLevels[n.DataAtom]; ok {
			w.flush()
			text := collapseSpace(textOf(n))
			if text == "" {
				return
			}
			if level == 1 && w.firstH1 == "" {
				w.firstH1 = text
			}
			w.headings++
			w.blocks = append(w.blocks, strings.Repeat("#", level)+" "+text)
			w.plain = append(w.plain, text)
			return
		}
		if blocks[n.DataAtom] {
			w.flush()
			defer w.flush()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// textOf returns the concatenated text below n
func textOf(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
