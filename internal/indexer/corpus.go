package indexer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dshills/docsearch/internal/tfidf"
	"github.com/dshills/docsearch/pkg/types"
)

var (
	// ErrDocNotFound is returned when a doc ID is not in the index
	ErrDocNotFound = errors.New("document not found")

	// ErrInvalidIndex is returned by Load for input that is not a consistent
	// corpus index
	ErrInvalidIndex = errors.New("invalid corpus index")
)

// CorpusIndex is the searchable form of a corpus. It is never modified after
// it is built or loaded and may be shared by concurrent searches.
type CorpusIndex struct {
	Docs  []types.IndexedDoc `json:"docs"`
	TFIDF *tfidf.Index       `json:"tfidf"`
}

// Doc returns the indexed doc with the given ID
func (ci *CorpusIndex) Doc(id types.DocID) (*types.IndexedDoc, error) {
	for i := range ci.Docs {
		if ci.Docs[i].Doc.ID == id {
			return &ci.Docs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no document with id %d in corpus", ErrDocNotFound, id)
}

// ChunkCount returns the total number of chunks over all docs
func (ci *CorpusIndex) ChunkCount() int {
	n := 0
	for _, d := range ci.Docs {
		n += len(d.Chunks)
	}
	return n
}

// Save writes the index as JSON
func (ci *CorpusIndex) Save(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(ci); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return nil
}

// Load reads an index written by Save. An index without TF-IDF statistics
// gets them rebuilt from its chunks.
func Load(r io.Reader) (*CorpusIndex, error) {
	var ci CorpusIndex
	if err := json.NewDecoder(r).Decode(&ci); err != nil {
		return nil, fmt.Errorf("%w: failed to decode index: %w", ErrInvalidIndex, err)
	}
	if err := ci.validate(); err != nil {
		return nil, err
	}
	if ci.TFIDF == nil {
		ci.TFIDF = tfidf.Build(ci.Docs)
	}
	return &ci, nil
}

// LoadFile reads an index from a file
func LoadFile(path string) (*CorpusIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// validate rejects indexes a search could not run against: duplicate doc
// IDs, malformed chunk ranges, or TF-IDF statistics that do not cover every
// chunk of every doc.
func (ci *CorpusIndex) validate() error {
	seen := make(map[types.DocID]struct{}, len(ci.Docs))
	for _, d := range ci.Docs {
		if _, ok := seen[d.Doc.ID]; ok {
			return fmt.Errorf("%w: %w: %d", ErrInvalidIndex, types.ErrDuplicateDocID, d.Doc.ID)
		}
		seen[d.Doc.ID] = struct{}{}

		// The chunked text is not stored, so only order and sign are checked
		if err := types.ValidateChunks(d.Chunks, math.MaxInt); err != nil {
			return fmt.Errorf("%w: doc %d: %w", ErrInvalidIndex, d.Doc.ID, err)
		}
	}
	if ci.TFIDF == nil {
		return nil
	}

	if ci.TFIDF.TotalChunks != ci.ChunkCount() {
		return fmt.Errorf("%w: index has %d chunks but TF-IDF statistics cover %d",
			ErrInvalidIndex, ci.ChunkCount(), ci.TFIDF.TotalChunks)
	}
	for _, d := range ci.Docs {
		want := len(d.Chunks)
		lengths := len(ci.TFIDF.TermLength[d.Doc.ID])
		frequencies := len(ci.TFIDF.TermFrequency[d.Doc.ID])
		if lengths != want || frequencies != want {
			return fmt.Errorf("%w: doc %d has %d chunks but TF-IDF term lengths cover %d and term frequencies %d",
				ErrInvalidIndex, d.Doc.ID, want, lengths, frequencies)
		}
	}
	return nil
}
