// Package embedder maps text to dense vectors for semantic search.
//
// # Basic Usage
//
//	emb, err := embedder.New(ctx, embedder.Config{Provider: "local"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	vec, err := emb.Embed(ctx, "how do I parse a URL")
//	fmt.Printf("dimension: %d\n", len(vec))
//
// # Provider Selection
//
// When Config.Provider is empty the provider is chosen from the environment:
//
//  1. If DOCSEARCH_EMBEDDING_PROVIDER is set → use specified provider
//  2. Else if JINA_API_KEY is set → use Jina AI
//  3. Else if OPENAI_API_KEY is set → use OpenAI
//  4. Else → fallback to local provider (offline mode)
//
// # Provider Comparison
//
// Jina AI:
//   - Dimensions: 1024
//   - Network: required
//
// OpenAI:
//   - Dimensions: 1536
//   - Network: required
//
// Local (offline):
//   - Dimensions: 384 (configurable)
//   - Feature-hashed terms and term pairs; lexical, not semantic
//   - Deterministic and free
//
// Remote providers retry transient failures (network errors, 5xx, 429)
// with exponential backoff. Other client errors fail immediately.
//
// # Caching
//
// Cached wraps any embedder with a cache.Cache. Vectors are stored per
// content hash under "embed:<embedder id>:<content id>", so re-indexing a
// corpus or repeating a query never re-embeds the same text:
//
//	emb = embedder.Cached(emb, c)
//
// # Worker Mode
//
// With Config.Mode set to "worker" embedding runs in a subprocess started
// from Config.WorkerCommand (normally `docsearch embed-worker`). Requests
// and responses are newline-delimited JSON correlated by id:
//
//	→ {"id":1,"type":"embedText","args":"some text"}
//	← {"id":1,"result":[0.01,-0.2,...]}
//
// The worker's first line announces its embedder:
//
//	← {"ready":true,"embedder":"local/hash-384","dimension":384}
//
// ServeWorker implements the worker side over any reader and writer.
package embedder
