// Package client is the entry point for querying a corpus index.
//
// A Client wraps a CorpusIndex with a configured Searcher and adds doc lookup
// and source file annotation on top of search.
//
// # Basic Usage
//
//	idx, err := indexer.LoadFile("index.json")
//	if err != nil {
//	    return err
//	}
//	c, err := client.New(idx, client.Options{Embedder: emb, Cache: cache})
//	if err != nil {
//	    return err
//	}
//
//	results, err := c.Search(ctx, types.Query{Text: "how do I configure caching"})
//	doc, err := c.Doc(results[0].Doc)
//
// # Related Docs
//
// Related chunks a source file the way target documents are chunked (larger
// chunks, Go declarations for .go files) and searches the corpus with each
// chunk, naming the file as the active file of the query:
//
//	annotations, err := c.Related(ctx, "internal/cache/fs.go", src, 4)
//	for _, a := range annotations {
//	    fmt.Printf("%d:%d %s %s\n", a.Start.Line+1, a.Start.Character+1, a.Title, a.URL)
//	}
//
// Titles come from the extracted doc title, else the doc URL. When there are
// several annotations the suffix all titles share (usually the site name) is
// removed before titles are truncated.
package client
