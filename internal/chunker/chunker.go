package chunker

import (
	"strings"

	"github.com/dshills/docsearch/internal/parser"
	"github.com/dshills/docsearch/pkg/types"
)

const (
	// MinTargetChunkBytes is the size below which adjacent blocks of a target
	// document are merged into one chunk
	MinTargetChunkBytes = 200

	// maxHeadingLevel is the deepest ATX heading recognized as a section break
	maxHeadingLevel = 6
)

// Options controls how a text is split
type Options struct {
	// IsMarkdown splits at ATX headings instead of blank lines
	IsMarkdown bool

	// IsTargetDoc marks the file a query is being made for, as opposed to a
	// corpus document. Target docs get larger chunks.
	IsTargetDoc bool

	// Filename of the target doc, if known. Go sources are split at
	// top-level declarations.
	Filename string
}

// Chunker splits document text into ranged chunks
type Chunker struct {
	minTargetChunkBytes int
}

// New creates a new Chunker instance
func New() *Chunker {
	return &Chunker{minTargetChunkBytes: MinTargetChunkBytes}
}

// span is a candidate chunk: a byte range of the source plus the text to index
type span struct {
	start, end int
	text       string
}

// Chunk splits text into chunks whose ranges lie within text, ascend and do
// not overlap. Empty or whitespace-only text yields no chunks.
func (c *Chunker) Chunk(text string, opts Options) []types.Chunk {
	if strings.TrimSpace(text) == "" {
		return []types.Chunk{}
	}

	var spans []span
	switch {
	case opts.IsTargetDoc && strings.HasSuffix(opts.Filename, ".go"):
		spans = goDecls(opts.Filename, text)
		if len(spans) == 0 {
			spans = c.merge(paragraphs(text))
		}
	case opts.IsMarkdown:
		spans = sections(text)
		if opts.IsTargetDoc {
			spans = c.merge(spans)
		}
	default:
		spans = paragraphs(text)
		if opts.IsTargetDoc {
			spans = c.merge(spans)
		}
	}

	chunks := make([]types.Chunk, 0, len(spans))
	for _, s := range spans {
		if s.text == "" {
			continue
		}
		chunks = append(chunks, types.Chunk{
			Text:  s.text,
			Range: types.Range{Start: s.start, End: s.end},
		})
	}
	return chunks
}

// Chunk splits text with a default Chunker
func Chunk(text string, opts Options) []types.Chunk {
	return New().Chunk(text, opts)
}

// sections splits markdown at ATX headings that are not inside fenced code
// blocks. Heading markers are stripped from the chunk text.
func sections(text string) []span {
	var spans []span
	sectionStart := 0
	inFence := false
	var fence string

	forEachLine(text, func(start, end int) {
		line := text[start:end]
		trimmed := strings.TrimLeft(line, " ")
		if marker := fenceMarker(trimmed); marker != "" {
			switch {
			case !inFence:
				inFence, fence = true, marker
			case strings.HasPrefix(trimmed, fence):
				inFence = false
			}
			return
		}
		if inFence || headingLevel(trimmed) == 0 {
			return
		}
		if start > sectionStart {
			if s, ok := trimSpan(text, sectionStart, start); ok {
				spans = append(spans, s)
			}
		}
		sectionStart = start
	})
	if s, ok := trimSpan(text, sectionStart, len(text)); ok {
		spans = append(spans, s)
	}

	for i := range spans {
		spans[i].text = stripHeading(spans[i].text)
	}
	return spans
}

// paragraphs splits plain text at blank lines
func paragraphs(text string) []span {
	var spans []span
	paraStart := -1

	forEachLine(text, func(start, end int) {
		blank := strings.TrimSpace(text[start:end]) == ""
		switch {
		case blank && paraStart >= 0:
			if s, ok := trimSpan(text, paraStart, start); ok {
				spans = append(spans, s)
			}
			paraStart = -1
		case !blank && paraStart < 0:
			paraStart = start
		}
	})
	if paraStart >= 0 {
		if s, ok := trimSpan(text, paraStart, len(text)); ok {
			spans = append(spans, s)
		}
	}
	return spans
}

// goDecls returns one span per top-level declaration, or nil when the source
// does not parse
func goDecls(filename, text string) []span {
	result, err := parser.New().ParseSource(filename, []byte(text))
	if err != nil || result.HasErrors() {
		return nil
	}

	spans := make([]span, 0, len(result.Decls))
	prevEnd := 0
	for _, d := range result.Decls {
		if d.Start < prevEnd {
			continue
		}
		if d.Kind == parser.KindImport {
			continue
		}
		if s, ok := trimSpan(text, d.Start, d.End); ok {
			spans = append(spans, s)
			prevEnd = d.End
		}
	}
	return spans
}

// merge joins adjacent spans until each reaches the minimum target size
func (c *Chunker) merge(spans []span) []span {
	if len(spans) == 0 {
		return spans
	}

	merged := make([]span, 0, len(spans))
	cur := spans[0]
	for _, s := range spans[1:] {
		if cur.end-cur.start >= c.minTargetChunkBytes {
			merged = append(merged, cur)
			cur = s
			continue
		}
		cur.end = s.end
		cur.text = cur.text + "\n\n" + s.text
	}
	return append(merged, cur)
}

// forEachLine calls fn with the bounds of each line, excluding the newline
func forEachLine(text string, fn func(start, end int)) {
	start := 0
	for start <= len(text) {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			if start < len(text) {
				fn(start, len(text))
			}
			return
		}
		fn(start, start+i)
		start += i + 1
	}
}

// trimSpan narrows [start,end) to exclude surrounding whitespace
func trimSpan(text string, start, end int) (span, bool) {
	raw := text[start:end]
	left := strings.TrimLeft(raw, " \t\r\n")
	start += len(raw) - len(left)
	trimmed := strings.TrimRight(left, " \t\r\n")
	if trimmed == "" {
		return span{}, false
	}
	return span{start: start, end: start + len(trimmed), text: trimmed}, true
}

func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return 0
	}
	if level < len(line) && line[level] != ' ' && line[level] != '\t' {
		return 0
	}
	return level
}

func fenceMarker(line string) string {
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(line, m) {
			return m
		}
	}
	return ""
}

// stripHeading removes the leading heading marker (and any closing hashes)
// from a section
func stripHeading(section string) string {
	first, rest, hasRest := strings.Cut(section, "\n")
	level := headingLevel(first)
	if level == 0 {
		return section
	}
	title := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(first[level:]), "#"))
	if !hasRest {
		return title
	}
	if title == "" {
		return strings.TrimSpace(rest)
	}
	return title + "\n" + rest
}
