package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
)

// SearchAgentName is the search agent's identifier in agent history and logs.
const SearchAgentName = "search_agent"

// defaultSearchResults bounds the search agent's provider call.
const defaultSearchResults = 5

// SearchAgent performs one external web search with the raw query and folds
// the results into the state. It has no branching logic and is always
// terminal: one provider call, one state update.
type SearchAgent struct {
	BaseAgent
	provider   core.SearchProvider
	maxResults int
}

// SearchAgentOptions configures a SearchAgent instance.
type SearchAgentOptions struct {
	Logger     logging.Logger
	MaxResults int
}

// NewSearchAgent creates the web-search agent. It never calls the reasoning
// service, so no model is required.
func NewSearchAgent(provider core.SearchProvider, optFns ...func(o *SearchAgentOptions)) *SearchAgent {
	opts := SearchAgentOptions{MaxResults: defaultSearchResults}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &SearchAgent{
		BaseAgent:  NewBaseAgent(SearchAgentName, "Searches the web for current information", nil, opts.Logger),
		provider:   provider,
		maxResults: opts.MaxResults,
	}
}

// Process replaces state.Results wholesale, derives data freshness from the
// first result, and appends a human-readable summary to context. A provider
// failure yields an empty result list, never an error.
func (a *SearchAgent) Process(ctx context.Context, state *core.AgentState) error {
	query := state.Query

	results, err := a.provider.Search(ctx, query, a.maxResults)
	if err != nil {
		a.logger.Warn("search provider failed", "agent", a.name, "provider", a.provider.Name(), "error", err)
		results = nil
	}
	if results == nil {
		results = []core.SearchResult{}
	}
	state.Results = results

	if len(results) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d search results for: %s\n", len(results), query)
		lines := make([]string, 0, 3)
		for _, r := range results[:min(3, len(results))] {
			lines = append(lines, fmt.Sprintf("- %s (%s)", r.Title, r.URL))
		}
		b.WriteString(strings.Join(lines, "\n"))
		a.UpdateContext(state, b.String())

		state.DataFreshness = core.DataFreshness{
			LastUpdated: results[0].Timestamp,
			Source:      a.provider.Name(),
			ResultCount: len(results),
		}
	} else {
		a.UpdateContext(state, "No search results found for: "+query)
	}

	a.AddMessage(state, fmt.Sprintf("Search completed. Found %d results.", len(results)), "assistant")
	return nil
}
