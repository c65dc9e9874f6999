package graph

import "github.com/hupe1980/tripmesh/core"

// CallbackType identifies a workflow lifecycle point callbacks can hook.
type CallbackType string

const (
	// CallbackBeforeNode is triggered before a node runs.
	CallbackBeforeNode CallbackType = "before_node"

	// CallbackAfterNode is triggered after a node has run, including runs
	// that set state.Error.
	CallbackAfterNode CallbackType = "after_node"
)

// NodeContext carries the information callbacks receive at each hook point.
// State is the live turn state; callbacks must treat it as read-only.
type NodeContext struct {
	Node     string
	ThreadID string
	State    *core.AgentState
}

// Callback is a workflow lifecycle hook. Callbacks run synchronously on the
// turn's goroutine, so implementations should be fast and must not panic.
// They are observational: they cannot alter routing or abort the turn.
type Callback interface {
	Type() CallbackType
	Execute(nodeCtx NodeContext)
}

// FunctionCallback wraps a plain function as a Callback.
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(nodeCtx NodeContext)
}

// NewFunctionCallback creates a function-based callback for the given
// lifecycle point.
func NewFunctionCallback(callbackType CallbackType, fn func(nodeCtx NodeContext)) *FunctionCallback {
	return &FunctionCallback{callbackType: callbackType, fn: fn}
}

// Type returns the lifecycle point this callback handles.
func (c *FunctionCallback) Type() CallbackType { return c.callbackType }

// Execute calls the wrapped function.
func (c *FunctionCallback) Execute(nodeCtx NodeContext) { c.fn(nodeCtx) }

// callbackManager routes registered callbacks to their lifecycle points.
// Registration happens only during construction; execution afterwards is
// safe for concurrent turns.
type callbackManager struct {
	callbacks map[CallbackType][]Callback
}

func newCallbackManager(callbacks []Callback) *callbackManager {
	cm := &callbackManager{callbacks: make(map[CallbackType][]Callback)}
	for _, cb := range callbacks {
		cm.callbacks[cb.Type()] = append(cm.callbacks[cb.Type()], cb)
	}
	return cm
}

// execute runs all callbacks registered for the type, in registration order.
func (cm *callbackManager) execute(callbackType CallbackType, nodeCtx NodeContext) {
	for _, cb := range cm.callbacks[callbackType] {
		cb.Execute(nodeCtx)
	}
}
