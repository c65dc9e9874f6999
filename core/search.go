package core

import "context"

// SearchResult is a normalized web-search record. Providers fill Title, URL,
// Content, Score and PublishedDate; implementations stamp Source and
// Timestamp at retrieval time so downstream freshness reporting does not
// depend on provider-specific fields.
type SearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date,omitempty"`
	Source        string  `json:"source,omitempty"`
	Timestamp     string  `json:"timestamp,omitempty"`
}

// SearchProvider performs one bounded external web search. Implementations
// live in the search package; agents depend only on this contract.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)

	// Name identifies the provider in freshness metadata (e.g. "tavily").
	Name() string
}
