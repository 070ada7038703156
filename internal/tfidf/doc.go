// Package tfidf scores lexical relevance of terms to corpus chunks.
//
// Chunks, not documents, are the unit of analysis: term frequency is
// measured within a chunk and inverse document frequency counts chunks
// containing a term.
//
//	TF  = occurrences of term in chunk / number of terms in chunk
//	IDF = ln((1 + total chunks) / (1 + chunks containing term))
//
// Build and query sides tokenize with package terms so their terms agree.
//
//	idx := tfidf.Build(indexedDocs)
//	score := idx.QueryScore(tfidf.QueryTerms("parse url", tfidf.DefaultMinQueryTermLength), docID, 0)
//
// Asking about a doc or chunk that was not indexed is a programming error:
// Score and QueryScore panic with a *LookupError. Lookup returns the error
// instead.
package tfidf
