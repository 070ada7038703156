package types

import "fmt"

// ChunkIndex is the position of a chunk within its document's chunk list.
// Indexes are contiguous from 0.
type ChunkIndex = int

// Range is a half-open byte range [Start, End) into the text a chunk was cut from.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Chunk represents a contiguous span of a document used for indexing and search
type Chunk struct {
	Text  string `json:"text"`
	Range Range  `json:"range"`

	// Embeddings is the dense vector for Text. Nil until the chunk is embedded.
	Embeddings []float32 `json:"embeddings,omitempty"`
}

// ValidateChunks checks that every chunk range lies within a text of length
// textLen and that ranges are non-overlapping and in ascending order.
func ValidateChunks(chunks []Chunk, textLen int) error {
	prevEnd := 0
	for i, c := range chunks {
		if c.Range.Len() < 0 {
			return fmt.Errorf("%w: chunk %d [%d,%d)", ErrInvalidRange, i, c.Range.Start, c.Range.End)
		}
		if c.Range.Start < 0 || c.Range.End > textLen {
			return fmt.Errorf("%w: chunk %d [%d,%d) in text of length %d", ErrRangeOutOfBounds, i, c.Range.Start, c.Range.End, textLen)
		}
		if c.Range.Start < prevEnd {
			return fmt.Errorf("%w: chunk %d starts at %d before previous end %d", ErrOverlappingRange, i, c.Range.Start, prevEnd)
		}
		prevEnd = c.Range.End
	}
	return nil
}
