package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/internal/chunker"
	"github.com/dshills/docsearch/internal/embedder"
	"github.com/dshills/docsearch/internal/extractor"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/tfidf"
	"github.com/dshills/docsearch/pkg/types"
)

// Options configures an Indexer
type Options struct {
	// Extractor pulls content out of raw docs. Nil indexes the raw text.
	Extractor extractor.Extractor

	// Embedder computes chunk embeddings. Nil leaves chunks without embeddings.
	Embedder embedder.Embedder

	// Cache memoizes indexed docs, TF-IDF statistics and embeddings
	Cache *cache.Cache

	Logger *slog.Logger

	// Workers bounds the number of docs indexed concurrently (default: runtime.NumCPU())
	Workers int
}

// Indexer turns a corpus archive into a CorpusIndex: extract -> chunk -> embed -> tf-idf
type Indexer struct {
	extractor extractor.Extractor
	embedder  embedder.Embedder
	chunker   *chunker.Chunker
	cache     *cache.Cache
	logger    *slog.Logger
	workers   int
}

// New creates an Indexer. When both an embedder and a cache are given, chunk
// embeddings are memoized per chunk text.
func New(opts Options) *Indexer {
	c := opts.Cache
	if c == nil {
		c = cache.Noop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var emb embedder.Embedder
	if opts.Embedder != nil {
		if _, ok := opts.Embedder.(*embedder.CachedEmbedder); ok {
			emb = opts.Embedder
		} else {
			emb = embedder.Cached(opts.Embedder, c)
		}
	}

	return &Indexer{
		extractor: opts.Extractor,
		embedder:  emb,
		chunker:   chunker.New(),
		cache:     c,
		logger:    logger.OrNop(opts.Logger),
		workers:   workers,
	}
}

// IndexKey is the cache key of the indexed docs of an archive
func (idx *Indexer) IndexKey(a *Archive) string {
	return "indexCorpusDocs:" + a.ContentID + ":" + extractor.ID(idx.extractor)
}

// Index builds the index of an archive. Indexing the same archive with the
// same extractor again returns the cached docs without extracting, chunking
// or embedding.
func (idx *Indexer) Index(ctx context.Context, a *Archive) (*CorpusIndex, error) {
	if err := types.CheckUniqueIDs(a.Docs); err != nil {
		return nil, err
	}
	if a.ContentID == "" {
		a.ContentID = ArchiveContentID(a.Docs)
	}

	start := time.Now()
	var embedded atomic.Int32

	docs, err := cache.Memo(ctx, idx.cache, idx.IndexKey(a), func(ctx context.Context) ([]types.IndexedDoc, error) {
		return idx.indexDocs(ctx, a.Docs, &embedded)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index corpus docs: %w", err)
	}

	tf, err := idx.tfidfIndex(ctx, docs)
	if err != nil {
		return nil, err
	}

	ci := &CorpusIndex{Docs: docs, TFIDF: tf}
	idx.logger.Info("indexed corpus",
		"content_id", a.ContentID,
		"docs", len(docs),
		"chunks", ci.ChunkCount(),
		"embedded", embedded.Load(),
		"duration", time.Since(start))
	return ci, nil
}

func (idx *Indexer) tfidfIndex(ctx context.Context, docs []types.IndexedDoc) (*tfidf.Index, error) {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ContentID
	}
	key := "tfidfIndex:" + cache.ContentIDOf(ids...)

	tf, err := cache.Memo(ctx, idx.cache, key, func(context.Context) (*tfidf.Index, error) {
		return tfidf.Build(docs), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build tf-idf index: %w", err)
	}
	return tf, nil
}

// indexDocs indexes docs concurrently, keeping their order
func (idx *Indexer) indexDocs(ctx context.Context, docs []types.Doc, embedded *atomic.Int32) ([]types.IndexedDoc, error) {
	out := make([]types.IndexedDoc, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.workers)
	for i := range docs {
		g.Go(func() error {
			d, err := idx.indexDoc(gctx, docs[i], embedded)
			if err != nil {
				return fmt.Errorf("doc %d: %w", docs[i].ID, err)
			}
			out[i] = *d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (idx *Indexer) indexDoc(ctx context.Context, doc types.Doc, embedded *atomic.Int32) (*types.IndexedDoc, error) {
	var res *extractor.Result
	if idx.extractor != nil {
		var err error
		res, err = idx.extractor.Extract(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("failed to extract content: %w", err)
		}
	}

	text := doc.Text
	isMarkdown := strings.Contains(doc.Text, "##")
	if res != nil && res.Content != "" {
		text = res.Content
		isMarkdown = isMarkdown || res.Markdown
	}
	chunks := idx.chunker.Chunk(text, chunker.Options{IsMarkdown: isMarkdown})
	if err := types.ValidateChunks(chunks, len(text)); err != nil {
		return nil, fmt.Errorf("invalid chunks: %w", err)
	}

	if idx.embedder != nil {
		if err := idx.embedChunks(ctx, chunks, embedded); err != nil {
			return nil, err
		}
	}

	var content *types.Content
	if res != nil && res.Title != "" && res.TextContent != "" {
		content = &types.Content{Title: res.Title, TextContent: res.TextContent}
	}

	id, err := docContentID(doc, res, chunks)
	if err != nil {
		return nil, err
	}

	return &types.IndexedDoc{
		Doc:       types.DocRef{ID: doc.ID, URL: doc.URL},
		Content:   content,
		ContentID: id,
		Chunks:    chunks,
	}, nil
}

func (idx *Indexer) embedChunks(ctx context.Context, chunks []types.Chunk, embedded *atomic.Int32) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.workers)
	for i := range chunks {
		g.Go(func() error {
			vec, err := idx.embedder.Embed(gctx, chunks[i].Text)
			if err != nil {
				return fmt.Errorf("failed to embed chunk %d: %w", i, err)
			}
			chunks[i].Embeddings = vec
			embedded.Add(1)
			return nil
		})
	}
	return g.Wait()
}

// docContentID identifies an indexed doc by everything that went into it
func docContentID(doc types.Doc, res *extractor.Result, chunks []types.Chunk) (string, error) {
	data, err := json.Marshal([]any{doc, res, chunks})
	if err != nil {
		return "", fmt.Errorf("failed to encode doc %d: %w", doc.ID, err)
	}
	return cache.ContentID(string(data)), nil
}
