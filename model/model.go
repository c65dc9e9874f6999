package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// Request captures one stateless reasoning-service call: a system
// instruction plus the full ordered message transcript the model should see.
// Nothing is carried over between calls.
type Request struct {
	Instruction string         `json:"instruction"`
	Messages    []core.Message `json:"messages"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface agents use to drive text generation.
// Generate must be stateless per call and return the literal response text.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are keyed on the content of the last message in the request;
// unmatched prompts produce a deterministic fallback. All received requests
// are recorded for assertions.
type MockModel struct {
	info      Info
	responses map[string]string

	// Requests holds every request passed to Generate, in order.
	Requests []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Generate implements Model; returns the canned response for the last
// message's content or a deterministic fallback.
func (m *MockModel) Generate(ctx context.Context, req Request) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	m.Requests = append(m.Requests, req)
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	last := req.Messages[len(req.Messages)-1].Content
	if resp, ok := m.responses[last]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", last), nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
