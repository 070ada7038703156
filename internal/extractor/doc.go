// Package extractor pulls readable content out of raw corpus documents.
//
// An Extractor turns a document into a title, the text to chunk and its
// plain text. The corpus indexer chunks Result.Content instead of the raw
// document text when an extractor is configured, and records the title and
// plain text on the indexed document.
//
// Implementations:
//   - HTML: parses with golang.org/x/net/html, drops scripts, styles and
//     navigation, and renders headings as markdown headings
//   - Markdown: parses with goldmark to find the title and plain text
//   - Auto: HTML for documents that look like HTML, Markdown otherwise
//
// Extractor IDs are part of cache keys. Bump the version suffix of an ID
// whenever an extractor's output changes.
package extractor
