package core

import "strings"

// Route is the coordinator's resolved routing decision. It is a closed set;
// free-text model output is always reduced to one of these values before any
// control flow depends on it. The raw text is kept alongside the resolved
// value in metadata (routing_reason) for observability.
type Route string

const (
	// RoutePlanner sends the turn to the planner agent (trip/flight/travel
	// booking intents).
	RoutePlanner Route = "planner_agent"
	// RouteSearch sends the turn to the search agent (current/real-time
	// information needs).
	RouteSearch Route = "search_agent"
	// RouteEnd terminates the turn; the coordinator answers directly.
	RouteEnd Route = "end"
)

// Metadata keys written by the coordinator and read by the graph.
const (
	MetaRoutingDecision = "routing_decision"
	MetaRoutingReason   = "routing_reason"
)

// ResolveRoute reduces raw classifier output to a Route. Matching is an
// ordered, total function over the lower-cased text: planner beats search,
// and anything without a recognized substring resolves to RouteEnd.
func ResolveRoute(raw string) Route {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lower, string(RoutePlanner)):
		return RoutePlanner
	case strings.Contains(lower, string(RouteSearch)):
		return RouteSearch
	default:
		return RouteEnd
	}
}
