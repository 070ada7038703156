// Package chunker divides document text into chunks for indexing and search.
//
// A chunk is the unit of indexing and of result granularity: TF-IDF
// statistics and embeddings are computed per chunk and search results point
// at a (document, chunk) pair.
//
// # Basic Usage
//
//	chunks := chunker.Chunk(doc.Text, chunker.Options{IsMarkdown: true})
//	for i, c := range chunks {
//	    fmt.Printf("chunk %d: bytes %d-%d\n", i, c.Range.Start, c.Range.End)
//	}
//
// # Chunking Strategy
//
// Chunks are created at structural boundaries:
//   - Markdown: one chunk per ATX heading section. Headings inside fenced
//     code blocks do not split. Heading markers are removed from the text.
//   - Plain text: one chunk per paragraph (blank-line separated).
//   - Go source, when it is the target doc: one chunk per top-level
//     declaration including its doc comment. Imports are skipped.
//
// Target docs (the file a query is made for) merge adjacent blocks until
// each chunk holds at least MinTargetChunkBytes bytes, so that a query is
// built from a meaningful amount of context.
//
// # Ranges
//
// Every chunk records the byte range of the source it was cut from. Ranges
// lie within the text, ascend and never overlap. The chunk text may differ
// from the ranged source (stripped heading markers, merged blocks) but is
// always derived from it. Empty documents yield zero chunks.
package chunker
