package core

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single role-tagged entry in a conversation transcript.
// Role is one of "system", "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryEntry records one agent activation within a thread's lifetime.
type HistoryEntry struct {
	Agent     string    `json:"agent"`
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
}

// DataFreshness carries provenance for the search results held in a state:
// which provider produced them, how many, and the retrieval stamp of the
// first result.
type DataFreshness struct {
	LastUpdated string `json:"last_updated"`
	Source      string `json:"source"`
	ResultCount int    `json:"result_count"`
}

// AgentState is the mutable record threaded through every stage of one
// query's processing. One instance exists per in-flight turn; the messages
// and agent history survive across turns via the checkpoint store.
//
// Contract:
//   - Messages never loses prior turns except on an explicit new conversation
//   - AgentHistory is strictly append-only within a thread's lifetime
//   - Results are replaced wholesale by whichever agent runs
//   - Metadata is merged/overwritten per key
type AgentState struct {
	// TurnID uniquely identifies the in-flight turn; the graph assigns a
	// fresh one at the start of every turn for log correlation.
	TurnID        string         `json:"turn_id,omitempty"`
	Query         string         `json:"query"`
	Messages      []Message      `json:"messages"`
	Context       string         `json:"context"`
	Results       []SearchResult `json:"results"`
	Metadata      map[string]any `json:"metadata"`
	CurrentAgent  string         `json:"current_agent,omitempty"`
	AgentHistory  []HistoryEntry `json:"agent_history"`
	Response      string         `json:"response,omitempty"`
	DataFreshness DataFreshness  `json:"data_freshness"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Error         string         `json:"error,omitempty"`
}

// NewAgentState creates the initial state for a new query. The caller is
// expected to seed Messages with the user's message (the graph does this)
// before the first agent runs.
func NewAgentState(query string) *AgentState {
	now := time.Now()
	return &AgentState{
		Query:        query,
		Messages:     []Message{},
		Results:      []SearchResult{},
		Metadata:     map[string]any{},
		AgentHistory: []HistoryEntry{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AppendMessage appends a role-tagged message to the transcript.
func (s *AgentState) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// RecentWindow returns up to n messages preceding the current query. The
// last message is excluded because it is the query currently being processed;
// agents pass this window to the model for conversational context.
func (s *AgentState) RecentWindow(n int) []Message {
	if len(s.Messages) <= 1 {
		return nil
	}
	start := len(s.Messages) - 1 - n
	if start < 0 {
		start = 0
	}
	return s.Messages[start : len(s.Messages)-1]
}

// Clone returns a deep copy of the state safe for independent mutation.
// Checkpoint stores clone on both save and load so no caller retains a
// reference into stored snapshots.
func (s *AgentState) Clone() *AgentState {
	clone := *s
	clone.Messages = make([]Message, len(s.Messages))
	copy(clone.Messages, s.Messages)
	clone.Results = make([]SearchResult, len(s.Results))
	copy(clone.Results, s.Results)
	clone.AgentHistory = make([]HistoryEntry, len(s.AgentHistory))
	copy(clone.AgentHistory, s.AgentHistory)
	clone.Metadata = make(map[string]any, len(s.Metadata))
	for k, v := range s.Metadata {
		clone.Metadata[k] = v
	}
	return &clone
}

// NewID generates a unique identifier for turns and history correlation.
func NewID() string { return uuid.NewString() }
