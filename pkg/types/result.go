package types

// QueryMeta carries optional context about where a query originated.
type QueryMeta struct {
	ActiveFilename string `json:"activeFilename,omitempty"`
}

// Query is a free-text search query.
type Query struct {
	Text string     `json:"text"`
	Meta *QueryMeta `json:"meta,omitempty"`
}

// ActiveFilename returns the query's active filename, or "" if none was given.
func (q Query) ActiveFilename() string {
	if q.Meta == nil {
		return ""
	}
	return q.Meta.ActiveFilename
}

// SearchResult represents a single ranked chunk
type SearchResult struct {
	Doc   DocID      `json:"doc"`
	Chunk ChunkIndex `json:"chunk"`

	// Score is the final score after combining the individual method scores.
	Score float64 `json:"score"`

	// Scores holds the score from each search method that returned this result.
	Scores map[string]float64 `json:"scores,omitempty"`

	Excerpt string `json:"excerpt"`
}
