// Package mcp implements the Model Context Protocol (MCP) server for docsearch.
//
// The MCP server exposes a corpus index to AI coding assistants through five tools:
//   - search_docs: Search the corpus with a natural language query
//   - get_doc: Fetch a document with its chunks
//   - related_docs: Find the docs related to each part of a source file
//   - get_status: Report index size and the active search methods
//   - reload_index: Reload the index from the file or URL it was loaded from
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// Stdout belongs to the protocol. Logs must go to stderr.
//
// # Basic Usage
//
// The MCP server is typically started via the serve command:
//
//	docsearch serve --index index.json
//
// # Tool: search_docs
//
//	Request:
//	{
//	  "name": "search_docs",
//	  "arguments": {
//	    "query": "how do I configure caching",
//	    "limit": 5,
//	    "active_filename": "internal/cache/fs.go"
//	  }
//	}
//
//	Response:
//	{
//	  "query": "how do I configure caching",
//	  "total_results": 12,
//	  "results": [
//	    {
//	      "rank": 1,
//	      "doc": 3,
//	      "chunk": 0,
//	      "url": "https://example.com/docs/caching",
//	      "title": "Caching",
//	      "score": 0.82,
//	      "scores": {"keywordSearch": 0.41, "embeddingsSearch": 0.41},
//	      "excerpt": "Caching\nResults are cached on disk..."
//	    }
//	  ]
//	}
//
// # Tool: get_doc
//
//	Request:  {"name": "get_doc", "arguments": {"id": 3}}
//	Response: {"id": 3, "url": "...", "title": "...", "content_id": "...", "chunks": [...]}
//
// # Tool: related_docs
//
//	Request:  {"name": "related_docs", "arguments": {"filename": "main.go", "content": "package main..."}}
//	Response: {"filename": "main.go", "annotations": [{"title": "...", "url": "...", "start": {...}, "end": {...}}]}
//
// # Error Handling
//
// Errors are returned as MCPError with JSON-RPC error codes:
//   - -32602: Invalid parameters
//   - -32603: Internal error
//   - -32001: Document not found
//   - -32002: Reload already in progress
//   - -32004: Empty query
package mcp
