package tfidf

import (
	"fmt"
	"math"

	"github.com/dshills/docsearch/internal/terms"
	"github.com/dshills/docsearch/pkg/types"
)

// DefaultMinQueryTermLength excludes short query terms as noise
const DefaultMinQueryTermLength = 3

// Index holds per-chunk term statistics for a corpus. It is built once by
// Build and never modified; rebuilding means building a new Index.
type Index struct {
	// TermFrequency maps doc -> chunk index -> term -> occurrences in the chunk
	TermFrequency map[types.DocID][]map[string]int `json:"termFrequency"`

	// TermLength maps doc -> chunk index -> number of (non-unique) terms in the chunk
	TermLength map[types.DocID][]int `json:"termLength"`

	// ChunkFrequency maps term -> number of chunks containing the term
	ChunkFrequency map[string]int `json:"chunkFrequency"`

	TotalChunks int `json:"totalChunks"`
}

// LookupError reports a doc or chunk that is not in the index. It means the
// index and the caller disagree about the corpus, which is a bug.
type LookupError struct {
	Doc   types.DocID
	Chunk types.ChunkIndex
	Field string
}

func (e *LookupError) Error() string {
	if e.Chunk < 0 {
		return fmt.Sprintf("doc %d not found in %s", e.Doc, e.Field)
	}
	return fmt.Sprintf("chunk %d not found in %s for doc %d", e.Chunk, e.Field, e.Doc)
}

// Build indexes every chunk of docs in a single pass
func Build(docs []types.IndexedDoc) *Index {
	idx := &Index{
		TermFrequency:  make(map[types.DocID][]map[string]int, len(docs)),
		TermLength:     make(map[types.DocID][]int, len(docs)),
		ChunkFrequency: make(map[string]int),
	}

	for _, doc := range docs {
		docTermFrequency := make([]map[string]int, len(doc.Chunks))
		docTermLength := make([]int, len(doc.Chunks))

		for i, chunk := range doc.Chunks {
			chunkTerms := terms.Terms(chunk.Text)

			freq := make(map[string]int, len(chunkTerms))
			for _, t := range chunkTerms {
				freq[t]++
			}
			for t := range freq {
				idx.ChunkFrequency[t]++
			}

			docTermFrequency[i] = freq
			docTermLength[i] = len(chunkTerms)
			idx.TotalChunks++
		}

		idx.TermFrequency[doc.Doc.ID] = docTermFrequency
		idx.TermLength[doc.Doc.ID] = docTermLength
	}

	return idx
}

// Inputs are the values the TF-IDF formula is evaluated at
type Inputs struct {
	TermOccurrencesInChunk int
	ChunkTermLength        int
	TotalChunks            int
	TermChunkFrequency     int
}

// Calculate evaluates
//
//	TF  = occurrences / chunkTermLength
//	IDF = ln((1 + totalChunks) / (1 + termChunkFrequency))
//
// and returns TF * IDF. A chunk with no terms scores 0.
func Calculate(in Inputs) float64 {
	if in.ChunkTermLength == 0 {
		return 0
	}
	tf := float64(in.TermOccurrencesInChunk) / float64(in.ChunkTermLength)
	idf := math.Log(float64(1+in.TotalChunks) / float64(1+in.TermChunkFrequency))
	return tf * idf
}

// Lookup returns the TF-IDF of term in a chunk, or a *LookupError when the
// doc or chunk is not in the index
func (idx *Index) Lookup(term string, doc types.DocID, chunk types.ChunkIndex) (float64, error) {
	lengths, ok := idx.TermLength[doc]
	if !ok {
		return 0, &LookupError{Doc: doc, Chunk: -1, Field: "termLength"}
	}
	if chunk < 0 || chunk >= len(lengths) {
		return 0, &LookupError{Doc: doc, Chunk: chunk, Field: "termLength"}
	}
	freqs, ok := idx.TermFrequency[doc]
	if !ok {
		return 0, &LookupError{Doc: doc, Chunk: -1, Field: "termFrequency"}
	}
	if chunk >= len(freqs) || freqs[chunk] == nil {
		return 0, &LookupError{Doc: doc, Chunk: chunk, Field: "termFrequency"}
	}

	return Calculate(Inputs{
		TermOccurrencesInChunk: freqs[chunk][term],
		ChunkTermLength:        lengths[chunk],
		TotalChunks:            idx.TotalChunks,
		TermChunkFrequency:     idx.ChunkFrequency[term],
	}), nil
}

// Score is Lookup for callers that know the chunk exists. It panics with a
// *LookupError otherwise.
func (idx *Index) Score(term string, doc types.DocID, chunk types.ChunkIndex) float64 {
	score, err := idx.Lookup(term, doc, chunk)
	if err != nil {
		panic(err)
	}
	return score
}

// QueryScore sums Score over queryTerms
func (idx *Index) QueryScore(queryTerms []string, doc types.DocID, chunk types.ChunkIndex) float64 {
	var sum float64
	for _, t := range queryTerms {
		sum += idx.Score(t, doc, chunk)
	}
	return sum
}

// QueryTerms tokenizes query and drops terms shorter than minLength
func QueryTerms(query string, minLength int) []string {
	all := terms.Terms(query)
	out := make([]string, 0, len(all))
	for _, t := range all {
		if len(t) >= minLength {
			out = append(out, t)
		}
	}
	return out
}
