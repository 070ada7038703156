package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeDocNotFound      = -32001 // No document with the requested ID
	ErrorCodeReloadInProgress = -32002 // Another reload is already running
	ErrorCodeEmptyQuery       = -32004 // Query parameter is empty
)

// searchResult is a search result with the doc URL resolved
type searchResult struct {
	Rank    int                `json:"rank"`
	Doc     types.DocID        `json:"doc"`
	Chunk   types.ChunkIndex   `json:"chunk"`
	URL     string             `json:"url,omitempty"`
	Title   string             `json:"title,omitempty"`
	Score   float64            `json:"score"`
	Scores  map[string]float64 `json:"scores,omitempty"`
	Excerpt string             `json:"excerpt"`
}

// handleSearchDocs handles the search_docs tool invocation
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", DefaultSearchLimit)
	if limit < 1 || limit > MaxSearchLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("limit must be between 1 and %d", MaxSearchLimit), map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	q := types.Query{Text: query}
	if name := getStringDefault(args, "active_filename", ""); name != "" {
		q.Meta = &types.QueryMeta{ActiveFilename: name}
	}

	idx := s.client.Index()
	results, err := s.client.SearchIn(ctx, idx, q)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	out := make([]searchResult, 0, min(limit, len(results)))
	for i, r := range results[:min(limit, len(results))] {
		sr := searchResult{
			Rank:    i + 1,
			Doc:     r.Doc,
			Chunk:   r.Chunk,
			Score:   r.Score,
			Scores:  r.Scores,
			Excerpt: r.Excerpt,
		}
		if doc, err := idx.Doc(r.Doc); err == nil {
			sr.URL = doc.Doc.URL
			if doc.Content != nil {
				sr.Title = doc.Content.Title
			}
		}
		out = append(out, sr)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query":         query,
		"total_results": len(results),
		"results":       out,
	})), nil
}

// handleGetDoc handles the get_doc tool invocation
func (s *Server) handleGetDoc(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, ok := getInt(args, "id")
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "id parameter is required", map[string]interface{}{
			"param":  "id",
			"reason": "missing or not an integer",
		})
	}

	doc, err := s.client.Doc(types.DocID(id))
	if errors.Is(err, indexer.ErrDocNotFound) {
		return nil, newMCPError(ErrorCodeDocNotFound, err.Error(), map[string]interface{}{
			"id": id,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get doc", map[string]interface{}{
			"error": err.Error(),
		})
	}

	chunks := make([]map[string]interface{}, len(doc.Chunks))
	for i, c := range doc.Chunks {
		chunks[i] = map[string]interface{}{
			"chunk": i,
			"text":  c.Text,
			"range": c.Range,
		}
	}

	response := map[string]interface{}{
		"id":         doc.Doc.ID,
		"url":        doc.Doc.URL,
		"content_id": doc.ContentID,
		"chunks":     chunks,
	}
	if doc.Content != nil {
		response["title"] = doc.Content.Title
		response["text_content"] = doc.Content.TextContent
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleRelatedDocs handles the related_docs tool invocation
func (s *Server) handleRelatedDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	filename, ok := args["filename"].(string)
	if !ok || filename == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "filename parameter is required", map[string]interface{}{
			"param":  "filename",
			"reason": "missing or empty",
		})
	}
	content, ok := args["content"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "content parameter is required", map[string]interface{}{
			"param":  "content",
			"reason": "missing",
		})
	}

	limit := getIntDefault(args, "limit", 0)
	if limit < 0 || limit > MaxSearchLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("limit must be between 1 and %d", MaxSearchLimit), map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	annotations, err := s.client.Related(ctx, filename, content, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "related search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"filename":    filename,
		"annotations": annotations,
	})), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx := s.client.Index()
	embedded := 0
	for _, d := range idx.Docs {
		for _, c := range d.Chunks {
			if len(c.Embeddings) > 0 {
				embedded++
			}
		}
	}

	response := map[string]interface{}{
		"docs_count":       len(idx.Docs),
		"chunks_count":     idx.ChunkCount(),
		"embeddings_count": embedded,
		"search_methods":   s.client.Methods(),
	}
	if source := s.client.Source(); source != "" {
		response["source"] = source
	}
	if n, ok := s.client.CacheEntries(); ok {
		response["cache_entries"] = n
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleReloadIndex handles the reload_index tool invocation
func (s *Server) handleReloadIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.client.Source() == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "index was not loaded from a file or URL", nil)
	}

	idx, err := s.client.Reload(ctx)
	if errors.Is(err, indexer.ErrReloadInProgress) {
		return nil, newMCPError(ErrorCodeReloadInProgress, err.Error(), nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "reload failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.logger.Info("reloaded index", "source", s.client.Source(), "docs", len(idx.Docs))
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"reloaded":     true,
		"docs_count":   len(idx.Docs),
		"chunks_count": idx.ChunkCount(),
	})), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getInt extracts an integer parameter. JSON numbers arrive as float64.
func getInt(args map[string]interface{}, key string) (int, bool) {
	switch val := args[key].(type) {
	case float64:
		if val != float64(int(val)) {
			return 0, false
		}
		return int(val), true
	case int:
		return val, true
	default:
		return 0, false
	}
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := getInt(args, key); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
