package indexer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/pkg/types"
)

// ErrInvalidArchive is returned for archive input that cannot be decoded
var ErrInvalidArchive = errors.New("invalid corpus archive")

// Archive is an immutable snapshot of a corpus
type Archive struct {
	// ContentID is the hash of all doc texts. It versions the corpus in cache keys.
	ContentID   string      `json:"contentID"`
	Description string      `json:"description,omitempty"`
	Docs        []types.Doc `json:"docs"`
}

// NewArchive creates an archive of docs, rejecting duplicate doc IDs
func NewArchive(docs []types.Doc, description string) (*Archive, error) {
	if err := types.CheckUniqueIDs(docs); err != nil {
		return nil, err
	}
	return &Archive{
		ContentID:   ArchiveContentID(docs),
		Description: description,
		Docs:        docs,
	}, nil
}

// ArchiveContentID hashes the doc texts joined with NUL bytes
func ArchiveContentID(docs []types.Doc) string {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return cache.ContentIDOf(texts...)
}

// ReadArchive decodes an archive from r. A missing content ID is computed.
func ReadArchive(r io.Reader) (*Archive, error) {
	var a Archive
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	if err := types.CheckUniqueIDs(a.Docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	if a.ContentID == "" {
		a.ContentID = ArchiveContentID(a.Docs)
	}
	return &a, nil
}
