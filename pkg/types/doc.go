// Package types provides shared type definitions for docsearch.
//
// This package defines the domain types used across the indexing and search
// components: documents, chunks, indexed documents, queries, and search results.
//
// # Core Types
//
// Doc is a single document in a corpus. Its ID is unique within the corpus:
//
//	doc := types.Doc{ID: 1, Text: "# Install\n\nRun the installer.", URL: "https://example.com/install"}
//
// Chunk is a contiguous span of a document's text, the unit of indexing and
// of result granularity. Range records where the chunk came from:
//
//	chunk := types.Chunk{
//	    Text:  "Install\n\nRun the installer.",
//	    Range: types.Range{Start: 0, End: 30},
//	}
//
// IndexedDoc is the product of indexing one Doc: extracted content, chunks
// with their embeddings, and a content ID covering all of it.
//
// # Search
//
// Query carries the free-text query and optional metadata about where the
// query came from:
//
//	q := types.Query{Text: "parse a url", Meta: &types.QueryMeta{ActiveFilename: "url.go"}}
//
// SearchResult addresses a chunk by (Doc, Chunk) and carries the fused score
// along with each search method's contribution in Scores.
//
// # Serialization
//
// All types marshal to the flat JSON layout used by serialized corpus
// indexes. Embedding vectors serialize as arrays of numbers.
package types
