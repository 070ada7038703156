package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docsearch/internal/chunker"
	"github.com/dshills/docsearch/pkg/types"
)

const (
	// DefaultRelatedLimit is the number of docs annotated per chunk
	DefaultRelatedLimit = 4

	maxTitleLength  = 50
	maxDetailLength = 200
	untitled        = "Untitled"
)

// Position is a zero-based line and character offset in a file
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Annotation links a chunk of a source file to a related doc
type Annotation struct {
	Title  string      `json:"title"`
	URL    string      `json:"url,omitempty"`
	Detail string      `json:"detail"`
	Doc    types.DocID `json:"doc"`
	Score  float64     `json:"score"`

	// Range is the byte range of the annotated chunk in the file content
	Range types.Range `json:"range"`
	Start Position    `json:"start"`
	End   Position    `json:"end"`
}

// Related chunks a source file and returns, for every chunk, up to limit docs
// related to it. Annotations are in chunk order, then score order.
func (c *Client) Related(ctx context.Context, filename, content string, limit int) ([]Annotation, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	idx := c.holder.Index()
	chunks := chunker.Chunk(content, chunker.Options{
		IsMarkdown:  strings.EqualFold(filepath.Ext(filename), ".md"),
		IsTargetDoc: true,
		Filename:    filename,
	})
	pos := newPositionCalculator(content)

	perChunk := make([][]Annotation, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			results, err := c.searcher.Search(gctx, idx, types.Query{
				Text: chunk.Text,
				Meta: &types.QueryMeta{ActiveFilename: filename},
			})
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			for _, r := range results[:min(limit, len(results))] {
				doc, err := idx.Doc(r.Doc)
				if err != nil {
					return err
				}
				perChunk[i] = append(perChunk[i], annotation(doc, r, chunk.Range, pos))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Annotation
	for _, a := range perChunk {
		out = append(out, a...)
	}
	trimTitles(out)
	c.logger.Debug("related", "file", filename, "chunks", len(chunks), "annotations", len(out))
	return out, nil
}

func annotation(doc *types.IndexedDoc, r types.SearchResult, rng types.Range, pos func(int) Position) Annotation {
	title, detail := doc.Doc.URL, r.Excerpt
	if doc.Content != nil {
		if doc.Content.Title != "" {
			title = doc.Content.Title
		}
		if doc.Content.TextContent != "" {
			detail = doc.Content.TextContent
		}
	}
	if title == "" {
		title = untitled
	}
	return Annotation{
		Title:  title,
		URL:    doc.Doc.URL,
		Detail: truncate(detail, maxDetailLength),
		Doc:    doc.Doc.ID,
		Score:  r.Score,
		Range:  rng,
		Start:  pos(rng.Start),
		End:    pos(rng.End),
	}
}

// trimTitles removes the suffix shared by all titles (often the site name,
// like " - My Docs") and then truncates them
func trimTitles(annotations []Annotation) {
	if len(annotations) >= 2 {
		titles := make([]string, len(annotations))
		for i, a := range annotations {
			titles[i] = a.Title
		}
		suffix := longestCommonSuffix(titles)
		if suffix != "" {
			for i := range annotations {
				// Identical titles would be trimmed to nothing
				if trimmed := strings.TrimSuffix(annotations[i].Title, suffix); trimmed != "" {
					annotations[i].Title = trimmed
				}
			}
		}
	}
	for i := range annotations {
		annotations[i].Title = truncate(annotations[i].Title, maxTitleLength)
	}
}

func longestCommonSuffix(texts []string) string {
	if len(texts) == 0 {
		return ""
	}
	suffix := texts[0]
	for _, t := range texts[1:] {
		n := 0
		for n < len(suffix) && n < len(t) && suffix[len(suffix)-1-n] == t[len(t)-1-n] {
			n++
		}
		suffix = suffix[len(suffix)-n:]
	}
	// Don't split a multi-byte character
	for len(suffix) > 0 && !utf8.RuneStart(suffix[0]) {
		suffix = suffix[1:]
	}
	return suffix
}

// truncate shortens text to maxLength characters, marking the cut with "..."
func truncate(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength]) + "..."
}

// newPositionCalculator maps byte offsets in content to line/character
// positions
func newPositionCalculator(content string) func(offset int) Position {
	var lineStarts []int
	lineStarts = append(lineStarts, 0)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return func(offset int) Position {
		offset = max(0, min(offset, len(content)))
		line := 0
		lo, hi := 0, len(lineStarts)-1
		for lo <= hi {
			mid := (lo + hi) / 2
			if lineStarts[mid] <= offset {
				line = mid
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		start := lineStarts[line]
		return Position{Line: line, Character: utf8.RuneCountInString(content[start:offset])}
	}
}
