package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
)

// defaultModelTimeout bounds each reasoning-service call. A timeout surfaces
// as an ordinary Process error and is captured by Run like any other failure.
const defaultModelTimeout = 60 * time.Second

// BaseAgent bundles identity, model access and logging shared by all
// concrete agents. Embed it and implement Process to satisfy core.Agent.
type BaseAgent struct {
	name         string
	description  string
	model        model.Model
	logger       logging.Logger
	modelTimeout time.Duration
}

// NewBaseAgent constructs a BaseAgent. The model may be nil for agents that
// never call the reasoning service; a nil logger is replaced with a no-op.
func NewBaseAgent(name, description string, m model.Model, logger logging.Logger) BaseAgent {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if description == "" {
		description = fmt.Sprintf("Agent %s", name)
	}
	return BaseAgent{
		name:         name,
		description:  description,
		model:        m,
		logger:       logger,
		modelTimeout: defaultModelTimeout,
	}
}

// Name returns the agent's identifier as recorded in agent history.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// generate issues one stateless, bounded reasoning-service call.
func (b *BaseAgent) generate(ctx context.Context, instruction string, msgs []core.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.modelTimeout)
	defer cancel()
	start := time.Now()
	out, err := b.model.Generate(ctx, model.Request{Instruction: instruction, Messages: msgs})
	b.logger.Debug("model call finished", "agent", b.name, "duration", time.Since(start), "success", err == nil)
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}
	return out, nil
}

// AddMessage appends a role-tagged message to the state's transcript.
func (b *BaseAgent) AddMessage(state *core.AgentState, content, role string) {
	state.AppendMessage(role, content)
}

// UpdateContext appends to the state's free-text context, separating entries
// with a blank line once context already has content.
func (b *BaseAgent) UpdateContext(state *core.AgentState, additional string) {
	if state.Context != "" {
		state.Context += "\n\n" + additional
	} else {
		state.Context = additional
	}
}

// Run executes an agent under the shared contract: it stamps the state's
// current agent and timestamps, appends an agent-history entry, then invokes
// Process. Any error or panic inside Process is converted into state.Error
// and the (partially updated) state is returned. A single agent's failure
// never aborts the turn; the graph proceeds along its normal edge.
func Run(ctx context.Context, a core.Agent, state *core.AgentState) *core.AgentState {
	now := time.Now()
	state.CurrentAgent = a.Name()
	state.UpdatedAt = now
	state.AgentHistory = append(state.AgentHistory, core.HistoryEntry{
		Agent:     a.Name(),
		Timestamp: now,
		Query:     state.Query,
	})

	if err := safeProcess(ctx, a, state); err != nil {
		state.Error = fmt.Sprintf("%s error: %v", a.Name(), err)
		state.UpdatedAt = time.Now()
	}
	return state
}

func safeProcess(ctx context.Context, a core.Agent, state *core.AgentState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return a.Process(ctx, state)
}
