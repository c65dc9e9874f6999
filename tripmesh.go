// Package tripmesh provides a high-level façade over the agent workflow
// graph and its services (models, search providers, checkpoints & logging)
// for building conversational travel assistants. Most applications interact
// with this package by:
//  1. Creating a TripMesh via New() or NewFromConfig()
//  2. Running turns against a thread id (Run for request/response, Stream
//     for per-node progress)
//  3. Inspecting or patching persisted thread state (GetState / UpdateState)
//
// The façade delegates orchestration to graph.Graph while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable checkpoint
// store and a structured logger.
package tripmesh

import (
	"context"

	"github.com/hupe1980/tripmesh/checkpoint"
	"github.com/hupe1980/tripmesh/config"
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/graph"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
)

// Options configures the TripMesh instance.
type Options struct {
	// CheckpointStore persists per-thread state (defaults to in-memory).
	CheckpointStore core.CheckpointStore
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
	// MaxSearchResults caps per-query results for the search agent.
	MaxSearchResults int
	// Callbacks hook workflow node lifecycle points.
	Callbacks []graph.Callback
}

// TripMesh is the high-level façade aggregating the workflow graph and its
// services.
type TripMesh struct {
	opts  Options
	graph *graph.Graph
}

// New creates a new TripMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(m model.Model, provider core.SearchProvider, optFns ...func(o *Options)) *TripMesh {
	opts := Options{
		CheckpointStore: checkpoint.NewInMemoryStore(),
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	g := graph.New(m, provider, func(o *graph.Options) {
		o.CheckpointStore = opts.CheckpointStore
		o.Logger = opts.Logger
		o.MaxSearchResults = opts.MaxSearchResults
		o.Callbacks = opts.Callbacks
	})

	return &TripMesh{opts: opts, graph: g}
}

// NewFromConfig validates the config and assembles a TripMesh from it: the
// selected model provider, the web-search provider and a structured logger.
func NewFromConfig(cfg *config.Config, optFns ...func(o *Options)) (*TripMesh, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := cfg.NewModel()
	if err != nil {
		return nil, err
	}
	provider, err := cfg.NewSearchProvider()
	if err != nil {
		return nil, err
	}

	return New(m, provider, func(o *Options) {
		o.Logger = logging.NewSlogLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, false)
		o.MaxSearchResults = cfg.MaxSearchResults
		for _, fn := range optFns {
			fn(o)
		}
	}), nil
}

// Run executes one full conversational turn for the thread and returns the
// final state. Pass an empty threadID to use the default thread.
func (t *TripMesh) Run(ctx context.Context, query, threadID string) (*core.AgentState, error) {
	return t.graph.Run(ctx, query, threadID)
}

// Stream executes one turn and yields a state snapshot after each workflow
// node. The channel closes when the turn completes or ctx is canceled.
func (t *TripMesh) Stream(ctx context.Context, query, threadID string) <-chan graph.Update {
	return t.graph.Stream(ctx, query, threadID)
}

// GetState returns the persisted state for a thread.
func (t *TripMesh) GetState(threadID string) (*core.AgentState, error) {
	return t.graph.GetState(threadID)
}

// UpdateState merges values into a thread's persisted state.
func (t *TripMesh) UpdateState(threadID string, values map[string]any) error {
	return t.graph.UpdateState(threadID, values)
}

// ThreadLister is implemented by checkpoint stores that can enumerate their
// threads.
type ThreadLister interface {
	Threads() []string
}

// ThreadDeleter is implemented by checkpoint stores that can drop a thread.
type ThreadDeleter interface {
	Delete(threadID string)
}

// Threads lists the conversation threads the checkpoint store knows about.
// Stores without enumeration support yield an empty list.
func (t *TripMesh) Threads() []string {
	if l, ok := t.opts.CheckpointStore.(ThreadLister); ok {
		return l.Threads()
	}
	return nil
}

// DeleteThread removes a conversation thread from the checkpoint store, if
// the store supports deletion.
func (t *TripMesh) DeleteThread(threadID string) {
	if d, ok := t.opts.CheckpointStore.(ThreadDeleter); ok {
		d.Delete(threadID)
	}
}
