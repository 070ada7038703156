package types

import "fmt"

// DocID identifies a document within a corpus.
type DocID = int

// Doc is a document in a corpus. Docs are immutable once loaded.
type Doc struct {
	ID   DocID  `json:"id"`
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// DocRef is the subset of a Doc kept in an index.
type DocRef struct {
	ID  DocID  `json:"id"`
	URL string `json:"url,omitempty"`
}

// Content is the title and readable text extracted from a document.
type Content struct {
	Title       string `json:"title"`
	TextContent string `json:"textContent"`
}

// IndexedDoc is a document after chunking, content extraction and embedding.
type IndexedDoc struct {
	Doc     DocRef   `json:"doc"`
	Content *Content `json:"content"`

	// ContentID is the SHA-256 hash of the indexed content (including chunks).
	ContentID string `json:"contentID"`

	Chunks []Chunk `json:"chunks"`
}

// CheckUniqueIDs returns ErrDuplicateDocID if two docs share an ID.
func CheckUniqueIDs(docs []Doc) error {
	seen := make(map[DocID]struct{}, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateDocID, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}
