package tfidf

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsearch/pkg/types"
)

func indexedDoc(id types.DocID, chunkTexts ...string) types.IndexedDoc {
	d := types.IndexedDoc{Doc: types.DocRef{ID: id}}
	for _, text := range chunkTexts {
		d.Chunks = append(d.Chunks, types.Chunk{Text: text, Range: types.Range{End: len(text)}})
	}
	return d
}

func TestBuild(t *testing.T) {
	idx := Build([]types.IndexedDoc{
		indexedDoc(1, "apple banana apple", "cherry"),
		indexedDoc(2, "banana"),
	})

	assert.Equal(t, 3, idx.TotalChunks)
	assert.Equal(t, map[string]int{"apple": 2, "banana": 1}, idx.TermFrequency[1][0])
	assert.Equal(t, map[string]int{"cherry": 1}, idx.TermFrequency[1][1])
	assert.Equal(t, []int{3, 1}, idx.TermLength[1])
	assert.Equal(t, []int{1}, idx.TermLength[2])
	assert.Equal(t, 1, idx.ChunkFrequency["apple"])
	assert.Equal(t, 2, idx.ChunkFrequency["banana"])
}

func TestBuild_TotalChunksMatchesDocs(t *testing.T) {
	docs := []types.IndexedDoc{
		indexedDoc(1, "a b", "c d", "e f"),
		indexedDoc(2),
		indexedDoc(3, "g"),
	}
	assert.Equal(t, 4, Build(docs).TotalChunks)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want float64
	}{
		{"single term", Inputs{1, 1, 2, 1}, math.Log(3.0 / 2.0)},
		{"half of chunk", Inputs{1, 2, 9, 4}, 0.5 * math.Log(10.0/5.0)},
		{"absent term", Inputs{0, 5, 10, 0}, 0},
		{"empty chunk", Inputs{0, 0, 10, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Calculate(tt.in), 1e-12)
		})
	}
}

func TestScore_TwoDocCorpus(t *testing.T) {
	idx := Build([]types.IndexedDoc{indexedDoc(1, "aaa"), indexedDoc(2, "bbb")})
	q := QueryTerms("bbb", DefaultMinQueryTermLength)

	want := Calculate(Inputs{TermOccurrencesInChunk: 1, ChunkTermLength: 1, TotalChunks: 2, TermChunkFrequency: 1})
	assert.InDelta(t, want, idx.QueryScore(q, 2, 0), 1e-12)
	assert.Zero(t, idx.QueryScore(q, 1, 0))
}

func TestLookup_Missing(t *testing.T) {
	idx := Build([]types.IndexedDoc{indexedDoc(1, "aaa")})

	_, err := idx.Lookup("aaa", 9, 0)
	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, types.DocID(9), lerr.Doc)
	assert.Equal(t, "doc 9 not found in termLength", err.Error())

	_, err = idx.Lookup("aaa", 1, 3)
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "chunk 3 not found in termLength for doc 1", err.Error())
}

func TestScore_PanicsOnMissingChunk(t *testing.T) {
	idx := Build([]types.IndexedDoc{indexedDoc(1, "aaa")})

	assert.PanicsWithError(t, "chunk 1 not found in termLength for doc 1", func() {
		idx.Score("aaa", 1, 1)
	})
}

func TestQueryTerms(t *testing.T) {
	assert.Equal(t, []string{"parse", "url"}, QueryTerms("parse a URL in go", 3))
	assert.Empty(t, QueryTerms("go io", 3))
}

func TestIndex_JSONRoundTrip(t *testing.T) {
	idx := Build([]types.IndexedDoc{indexedDoc(1, "apple banana"), indexedDoc(7, "cherry cherry")})

	data, err := json.Marshal(idx)
	require.NoError(t, err)

	var got Index
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *idx, got)
}
