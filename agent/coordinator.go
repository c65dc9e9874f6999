package agent

import (
	"context"
	"strings"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
)

// CoordinatorName is the coordinator's identifier in agent history and logs.
const CoordinatorName = "coordinator_agent"

// contextWindowSize is how many prior messages (excluding the current query)
// classification and conversational calls receive for context.
const contextWindowSize = 5

const routingInstruction = `You are a coordinator that routes queries to specialized agents.
Analyze the query and conversation history to determine which agent should handle it.

Routing options:
- "planner_agent": For trip planning, flight booking, hotel booking, travel planning, event planning, scheduling
- "search_agent": For queries needing current web information, news, latest data, recent events, or real-time information (but NOT flight/travel booking)
- "end": For conversational queries, follow-up questions, or when the user explicitly doesn't want external search

Important:
- Pay attention to user instructions like "don't search" or "no external search"
- Follow-up questions referencing previous conversation should use "end" to access conversation history
- Use conversation context to understand what the user is asking about

Respond with ONLY the agent name ("planner_agent", "search_agent", or "end"), nothing else.`

const conversationalInstruction = `You are a friendly AI assistant. Respond naturally to conversational queries.
Keep responses brief, friendly, and helpful.
Use conversation history to provide context-aware responses.
If the user is responding to something you said, acknowledge it naturally.`

const searchClassifierInstruction = `You are a query classifier. Determine if a query needs web search for current/real-time information.

Return ONLY "yes" or "no":
- "yes": Query needs current information (news, latest data, recent events, real-time info)
- "no": Query is conversational, general knowledge, or doesn't need current web data

Examples:
- "Who won IPL in 2025?" → "yes" (needs current info)
- "Hey how are you?" → "no" (conversational)
- "What's the weather today?" → "yes" (needs current data)
- "I am also good" → "no" (conversational response)`

// Coordinator classifies each turn against three mutually exclusive routes
// and, when no further agent is needed, synthesizes the conversational reply
// itself. It is always the first node a turn visits.
type Coordinator struct {
	BaseAgent
}

// CoordinatorOptions configures a Coordinator instance.
type CoordinatorOptions struct {
	Logger logging.Logger
}

// NewCoordinator creates the routing agent.
func NewCoordinator(m model.Model, optFns ...func(o *CoordinatorOptions)) *Coordinator {
	opts := CoordinatorOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Coordinator{
		BaseAgent: NewBaseAgent(CoordinatorName, "Routes queries to appropriate specialized agents", m, opts.Logger),
	}
}

// Process implements the two-call classify-then-respond pattern: one call
// resolves the route, and only an "end" route triggers a second call that
// produces the direct reply. The resolved route and the raw classifier text
// are recorded in metadata regardless of branch.
func (c *Coordinator) Process(ctx context.Context, state *core.AgentState) error {
	window := state.RecentWindow(contextWindowSize)

	msgs := make([]core.Message, 0, len(window)+1)
	msgs = append(msgs, window...)
	msgs = append(msgs, core.Message{Role: "user", Content: "Route this query: " + state.Query})

	raw, err := c.generate(ctx, routingInstruction, msgs)
	if err != nil {
		return err
	}

	route := core.ResolveRoute(raw)
	if state.Metadata == nil {
		state.Metadata = map[string]any{}
	}
	state.Metadata[core.MetaRoutingDecision] = string(route)
	state.Metadata[core.MetaRoutingReason] = raw
	c.logger.Debug("routing resolved", "agent", c.name, "route", string(route))

	if route != core.RouteEnd {
		return nil
	}

	// No further agent needed: answer directly with the same context window.
	convMsgs := make([]core.Message, 0, len(window)+1)
	convMsgs = append(convMsgs, window...)
	convMsgs = append(convMsgs, core.Message{Role: "user", Content: state.Query})

	reply, err := c.generate(ctx, conversationalInstruction, convMsgs)
	if err != nil {
		return err
	}
	state.Response = reply
	c.UpdateContext(state, "Direct response: "+reply)
	c.AddMessage(state, reply, "assistant")
	return nil
}

// ShouldUseSearch is the binary fallback classifier the graph consults when
// the primary routing text is ambiguous. It resolves the model's literal
// reply by "yes"/"true" substring; any model failure counts as "no".
func (c *Coordinator) ShouldUseSearch(ctx context.Context, query string, conversation []core.Message) bool {
	start := len(conversation) - 3
	if start < 0 {
		start = 0
	}
	recent := conversation[start:]

	msgs := make([]core.Message, 0, len(recent)+1)
	msgs = append(msgs, recent...)
	msgs = append(msgs, core.Message{Role: "user", Content: "Does this query need web search: " + query})

	out, err := c.generate(ctx, searchClassifierInstruction, msgs)
	if err != nil {
		c.logger.Warn("search classifier failed", "agent", c.name, "error", err)
		return false
	}
	decision := strings.ToLower(strings.TrimSpace(out))
	return strings.Contains(decision, "yes") || strings.Contains(decision, "true")
}
