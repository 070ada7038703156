// Package searcher implements hybrid search over a corpus index, combining
// TF-IDF keyword matching with embedding similarity.
//
// The searcher provides three search modes:
//   - Hybrid: keyword + embeddings, scores summed (default)
//   - Keyword: TF-IDF only
//   - Embeddings: cosine similarity to the query embedding only
//
// # Basic Usage
//
//	s, err := searcher.NewSearcher(emb, searcher.DefaultConfig(), c, log)
//	if err != nil {
//	    return err
//	}
//
//	results, err := s.Search(ctx, idx, types.Query{Text: "configure the cache"})
//	for i, r := range results {
//	    fmt.Printf("#%d [%.3f] doc %d chunk %d\n", i+1, r.Score, r.Doc, r.Chunk)
//	}
//
// # Keyword Search
//
// The query is tokenized like the indexed chunks (lowercase, stopwords
// removed, stemmed), terms shorter than MinTermLength are dropped, and each
// chunk scores the sum of the TF-IDF of the remaining terms. Chunks scoring
// zero are not returned.
//
// # Embeddings Search
//
// The query is embedded, prefixed with a "// <file>" line when the query
// names an active file, and compared against every chunk embedding. Chunks
// below MinSimilarity are not returned. Query embeddings are memoized in the
// method's cache scope.
//
// # Fusion
//
// Multi runs every method concurrently, each with the cache scoped to the
// method name. Scores for the same (doc, chunk) are summed, so a chunk both
// methods find outranks one only a single method finds:
//
//	keyword 0.2 + embeddings 0.2 = 0.4  kept (>= MinScore 0.3)
//	keyword 0.2 alone                   dropped
//
// Results are sorted by score, ties by doc ID and then chunk index, which
// makes the order independent of which method finished first.
package searcher
