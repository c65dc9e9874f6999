package graph

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hupe1980/tripmesh/agent"
	"github.com/hupe1980/tripmesh/checkpoint"
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
)

// DefaultThreadID is used when callers pass an empty thread identifier.
const DefaultThreadID = "default"

// Update is one streamed workflow step: the node that just finished and a
// snapshot of the state after it ran. The snapshot is a clone; consumers may
// keep or mutate it freely.
type Update struct {
	Node  string           `json:"node"`
	State *core.AgentState `json:"state"`
}

// Options configures a Graph instance.
type Options struct {
	// CheckpointStore persists per-thread state between turns. Defaults to
	// an in-memory store.
	CheckpointStore core.CheckpointStore
	// Logger receives workflow diagnostics.
	Logger logging.Logger
	// MaxSearchResults caps results for the search agent.
	MaxSearchResults int
	// Callbacks hook node lifecycle points for instrumentation.
	Callbacks []Callback
}

// Graph is the orchestration entry point. One Graph is safe for concurrent
// turns on distinct threads; turns on the same thread are last-write-wins,
// matching the checkpoint store's contract.
type Graph struct {
	coordinator *agent.Coordinator
	search      *agent.SearchAgent
	planner     *agent.Planner
	checkpoints core.CheckpointStore
	logger      logging.Logger
	callbacks   *callbackManager
}

// New assembles the workflow around one reasoning model and one search
// provider, shared by every agent that needs them.
func New(m model.Model, provider core.SearchProvider, optFns ...func(o *Options)) *Graph {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.CheckpointStore == nil {
		opts.CheckpointStore = checkpoint.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Graph{
		coordinator: agent.NewCoordinator(m, func(o *agent.CoordinatorOptions) {
			o.Logger = opts.Logger
		}),
		search: agent.NewSearchAgent(provider, func(o *agent.SearchAgentOptions) {
			o.Logger = opts.Logger
			if opts.MaxSearchResults > 0 {
				o.MaxResults = opts.MaxSearchResults
			}
		}),
		planner: agent.NewPlanner(m, provider, func(o *agent.PlannerOptions) {
			o.Logger = opts.Logger
		}),
		checkpoints: opts.CheckpointStore,
		logger:      opts.Logger,
		callbacks:   newCallbackManager(opts.Callbacks),
	}
}

// runNode executes one agent with lifecycle callbacks and checkpoints the
// result.
func (g *Graph) runNode(ctx context.Context, a core.Agent, state *core.AgentState, threadID string) {
	nodeCtx := NodeContext{Node: a.Name(), ThreadID: threadID, State: state}
	g.callbacks.execute(CallbackBeforeNode, nodeCtx)
	agent.Run(ctx, a, state)
	g.callbacks.execute(CallbackAfterNode, nodeCtx)
	g.logger.Debug("node finished",
		"node", a.Name(), "thread_id", threadID, "turn_id", state.TurnID, "failed", state.Error != "")
	g.save(threadID, state)
}

// Run executes one full turn for the thread and returns the final state.
// Agent failures surface in state.Error rather than as a returned error; the
// returned error is reserved for context cancellation.
func (g *Graph) Run(ctx context.Context, query, threadID string) (*core.AgentState, error) {
	threadID = normalizeThread(threadID)
	state := g.prepareState(query, threadID)

	g.runNode(ctx, g.coordinator, state, threadID)
	if err := ctx.Err(); err != nil {
		return state, err
	}

	switch g.routeAfterCoordinator(ctx, state) {
	case core.RoutePlanner:
		g.runNode(ctx, g.planner, state, threadID)
	case core.RouteSearch:
		g.runNode(ctx, g.search, state, threadID)
	}

	return state, ctx.Err()
}

// Stream executes one turn like Run but yields a state snapshot after every
// node. The channel closes when the turn completes or the context is
// canceled; checkpoints are saved before each yield so a consumer that stops
// reading never loses persisted progress.
func (g *Graph) Stream(ctx context.Context, query, threadID string) <-chan Update {
	threadID = normalizeThread(threadID)
	ch := make(chan Update)

	go func() {
		defer close(ch)
		state := g.prepareState(query, threadID)

		emit := func(node string) bool {
			if ctx.Err() != nil {
				return false
			}
			select {
			case ch <- Update{Node: node, State: state.Clone()}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		g.runNode(ctx, g.coordinator, state, threadID)
		if !emit(g.coordinator.Name()) {
			return
		}

		switch g.routeAfterCoordinator(ctx, state) {
		case core.RoutePlanner:
			g.runNode(ctx, g.planner, state, threadID)
			emit(g.planner.Name())
		case core.RouteSearch:
			g.runNode(ctx, g.search, state, threadID)
			emit(g.search.Name())
		}
	}()

	return ch
}

// GetState returns the persisted state for a thread.
func (g *Graph) GetState(threadID string) (*core.AgentState, error) {
	return g.checkpoints.Load(normalizeThread(threadID))
}

// UpdateState merges the given values into a thread's persisted state.
func (g *Graph) UpdateState(threadID string, values map[string]any) error {
	return g.checkpoints.Merge(normalizeThread(threadID), values)
}

// prepareState loads the thread's checkpoint and resets the turn-scoped
// fields so a recovered conversation starts the new turn clean while keeping
// its transcript, metadata and agent history. Any load failure, including an
// unknown thread, begins a fresh conversation.
func (g *Graph) prepareState(query, threadID string) *core.AgentState {
	state, err := g.checkpoints.Load(threadID)
	if err != nil {
		if !errors.Is(err, checkpoint.ErrThreadNotFound) {
			g.logger.Warn("checkpoint load failed, starting fresh", "thread_id", threadID, "error", err)
		}
		state = core.NewAgentState(query)
		state.TurnID = core.NewID()
		state.AppendMessage("user", query)
		return state
	}

	state.TurnID = core.NewID()
	state.Query = query
	state.AppendMessage("user", query)
	state.Response = ""
	state.Error = ""
	state.Context = ""
	state.Results = []core.SearchResult{}
	state.DataFreshness = core.DataFreshness{}
	state.UpdatedAt = time.Now()
	return state
}

// routeAfterCoordinator picks the next node from the coordinator's recorded
// decision. An absent or unrecognized decision (e.g. the coordinator itself
// failed) falls back to the binary search classifier; a "no" there ends the
// turn with whatever state we have.
func (g *Graph) routeAfterCoordinator(ctx context.Context, state *core.AgentState) core.Route {
	raw, _ := state.Metadata[core.MetaRoutingDecision].(string)

	switch {
	case raw == string(core.RouteEnd):
		return core.RouteEnd
	case strings.Contains(raw, string(core.RoutePlanner)):
		return core.RoutePlanner
	case strings.Contains(raw, string(core.RouteSearch)):
		return core.RouteSearch
	}

	if g.coordinator.ShouldUseSearch(ctx, state.Query, state.Messages) {
		return core.RouteSearch
	}
	return core.RouteEnd
}

func (g *Graph) save(threadID string, state *core.AgentState) {
	if err := g.checkpoints.Save(threadID, state); err != nil {
		g.logger.Warn("checkpoint save failed", "thread_id", threadID, "error", err)
	}
}

func normalizeThread(threadID string) string {
	if threadID == "" {
		return DefaultThreadID
	}
	return threadID
}
