package core

import "context"

// Agent is the contract all processing agents implement.
//
// Process takes ownership of the state for the duration of the call and
// mutates it in place; it must not retain a reference to the state after
// returning. Implementations report failures through the returned error,
// which the contract wrapper (agent.Run) converts into state.Error instead
// of aborting the turn.
type Agent interface {
	Name() string
	Description() string
	Process(ctx context.Context, state *AgentState) error
}
