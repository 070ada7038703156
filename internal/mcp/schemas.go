package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docsearch/internal/client"
)

// Limits for the search_docs limit parameter
const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 50
)

// searchDocsTool returns the tool definition for search_docs
func searchDocsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_docs",
		Description: "Search the documentation corpus with natural language or keyword queries",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query (natural language or keywords)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     DefaultSearchLimit,
					"minimum":     1,
					"maximum":     MaxSearchLimit,
				},
				"active_filename": map[string]interface{}{
					"type":        "string",
					"description": "Name of the file the user is working in, used as search context",
				},
			},
			Required: []string{"query"},
		},
	}
}

// getDocTool returns the tool definition for get_doc
func getDocTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_doc",
		Description: "Get an indexed document by ID, including its chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Document ID as returned by search_docs",
				},
			},
			Required: []string{"id"},
		},
	}
}

// relatedDocsTool returns the tool definition for related_docs
func relatedDocsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "related_docs",
		Description: "Find documentation related to each part of a source file",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "Name of the source file (its extension selects how it is chunked)",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Full text of the source file",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of docs per chunk",
					"default":     client.DefaultRelatedLimit,
					"minimum":     1,
					"maximum":     MaxSearchLimit,
				},
			},
			Required: []string{"filename", "content"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report statistics about the loaded documentation index",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// reloadIndexTool returns the tool definition for reload_index
func reloadIndexTool() mcp.Tool {
	return mcp.Tool{
		Name:        "reload_index",
		Description: "Reload the documentation index from its file or URL",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
