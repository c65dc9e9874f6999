package search

import (
	"context"
	"time"

	"github.com/hupe1980/tripmesh/core"
)

// Static returns canned results for every query. Useful for tests and demos
// where no external provider should be contacted.
type Static struct {
	// Results are returned (up to maxResults) for any query.
	Results []core.SearchResult
	// Err, if set, is returned instead of results.
	Err error

	// Queries records every search issued, in order.
	Queries []string
}

// NewStatic constructs a Static provider with the given canned results.
func NewStatic(results ...core.SearchResult) *Static {
	return &Static{Results: results}
}

// Name implements core.SearchProvider.
func (s *Static) Name() string { return "static" }

// Search implements core.SearchProvider; stamps source/timestamp like a real
// provider would.
func (s *Static) Search(ctx context.Context, query string, maxResults int) ([]core.SearchResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.Queries = append(s.Queries, query)
	if s.Err != nil {
		return nil, s.Err
	}
	now := time.Now().Format(time.RFC3339)
	out := make([]core.SearchResult, 0, len(s.Results))
	for _, r := range s.Results {
		if len(out) >= maxResults && maxResults > 0 {
			break
		}
		r.Source = s.Name()
		r.Timestamp = now
		out = append(out, r)
	}
	return out, nil
}
