// Package agent contains the concrete agent implementations and the shared
// contract wrapper that TripMesh's orchestration graph routes turns through.
// The package focuses on three concerns:
//
//  1. Base plumbing shared by all agents (BaseAgent, Run wrapper, message and
//     context helpers)
//  2. Routing: the Coordinator classifies each turn and either hands off or
//     answers directly
//  3. Retrieval and synthesis: the SearchAgent folds raw web results into the
//     state; the Planner turns colloquial travel queries into validated,
//     price-sorted offers with booking links
//
// Design principles:
//   - No agent aborts a turn: Run converts any Process failure (or panic)
//     into state.Error and execution continues along the graph's normal edge
//   - Every reasoning-service call is stateless and single-shot; agents pass
//     all needed conversational context explicitly
//   - Model output is never trusted: routing reduces free text to a closed
//     enum, and the planner's extraction degrades through an ordered chain of
//     parse strategies rather than failing
//
// The package intentionally keeps persistence, model specifics and search
// provider abstractions in their respective packages to avoid cyclic deps.
package agent
