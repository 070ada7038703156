package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/docsearch/pkg/types"
)

// ErrUnknownExtractor is returned by New for an unrecognized name
var ErrUnknownExtractor = errors.New("unknown content extractor")

// NoneID is the cache key component used when no extractor is configured
const NoneID = "noContentExtractor"

// Result is the content extracted from a document
type Result struct {
	// Title of the document, if one was found
	Title string

	// Content is the text to chunk in place of the raw document text
	Content string

	// TextContent is the plain text of the document with markup removed
	TextContent string

	// Markdown reports that Content uses markdown headings
	Markdown bool
}

// Extractor pulls readable content out of a raw document.
//
// ID must be stable: it is part of the cache key of indexed documents, so
// changing an extractor's output requires changing its ID.
type Extractor interface {
	ID() string
	Extract(ctx context.Context, doc types.Doc) (*Result, error)
}

// New returns the extractor registered under name. An empty name or "none"
// returns nil, meaning documents are indexed from their raw text.
func New(name string) (Extractor, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil
	case "html":
		return HTML(), nil
	case "markdown", "md":
		return Markdown(), nil
	case "auto":
		return Auto(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtractor, name)
	}
}

// ID returns e.ID(), or NoneID when e is nil
func ID(e Extractor) string {
	if e == nil {
		return NoneID
	}
	return e.ID()
}

type auto struct {
	html     Extractor
	markdown Extractor
}

// Auto returns an extractor that treats documents that look like HTML as
// HTML and everything else as markdown
func Auto() Extractor {
	return &auto{html: HTML(), markdown: Markdown()}
}

func (a *auto) ID() string { return "auto/v1" }

func (a *auto) Extract(ctx context.Context, doc types.Doc) (*Result, error) {
	if LooksLikeHTML(doc.Text) {
		return a.html.Extract(ctx, doc)
	}
	return a.markdown.Extract(ctx, doc)
}

// LooksLikeHTML reports whether text starts like an HTML document or fragment
func LooksLikeHTML(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if len(t) > 512 {
		t = t[:512]
	}
	return strings.HasPrefix(t, "<!doctype html") ||
		strings.HasPrefix(t, "<html") ||
		strings.Contains(t, "<body") ||
		strings.Contains(t, "<head")
}

// collapseSpace joins runs of whitespace into single spaces
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
