// Package indexer builds, stores and loads corpus indexes.
//
// A corpus is distributed as an Archive: a list of documents with unique
// integer IDs plus a content ID derived from their texts. The Indexer turns an
// archive into a CorpusIndex that search methods run against.
//
// # Basic Usage
//
//	archive, err := indexer.ReadArchive(os.Stdin)
//	if err != nil {
//	    return err
//	}
//
//	idx := indexer.New(indexer.Options{
//	    Extractor: extractor.Markdown(),
//	    Embedder:  embedder.NewLocalProvider(384),
//	    Cache:     cache.New(cache.NewFileSystemStore(dir)),
//	})
//
//	ci, err := idx.Index(ctx, archive)
//	if err != nil {
//	    return err
//	}
//	err = ci.Save(os.Stdout)
//
// # Indexing Pipeline
//
// Each document goes through:
//
//  1. Extract: the optional content extractor pulls a title and readable text
//  2. Chunk: extracted content (or the raw text) is split into chunks
//  3. Embed: every chunk gets an embedding vector
//  4. Identify: the doc content ID hashes the doc, extracted content and chunks
//
// Documents are processed by a bounded worker pool; the output keeps archive
// order. TF-IDF statistics are computed once over all chunks at the end.
//
// # Caching
//
// The indexed docs are memoized under
//
//	indexCorpusDocs:<archive content ID>:<extractor ID>
//
// and the TF-IDF statistics under a key derived from the doc content IDs, so
// indexing an unchanged archive twice does no work the second time. Chunk
// embeddings are memoized per chunk text, which makes re-indexing an edited
// archive only embed the chunks that changed.
//
// # Loading
//
// A saved index is loaded with Load, LoadFile or FetchIndex (HTTP). Holder
// serves a loaded index to concurrent readers and reloads it from its source
// on request.
package indexer
