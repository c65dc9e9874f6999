package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAgentState(t *testing.T) {
	st := NewAgentState("hello")

	assert.Equal(t, "hello", st.Query)
	assert.Empty(t, st.Messages)
	assert.Empty(t, st.Results)
	assert.NotNil(t, st.Metadata)
	assert.Empty(t, st.AgentHistory)
	assert.False(t, st.CreatedAt.IsZero())
	assert.False(t, st.UpdatedAt.IsZero())
	assert.Empty(t, st.Error)
}

func TestAgentState_AppendMessage(t *testing.T) {
	st := NewAgentState("q")
	st.AppendMessage("user", "q")
	st.AppendMessage("assistant", "a")

	require.Len(t, st.Messages, 2)
	assert.Equal(t, Message{Role: "user", Content: "q"}, st.Messages[0])
	assert.Equal(t, Message{Role: "assistant", Content: "a"}, st.Messages[1])
}

func TestAgentState_RecentWindow(t *testing.T) {
	st := NewAgentState("current")
	for _, m := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"} {
		st.AppendMessage("user", m)
	}
	st.AppendMessage("user", "current")

	window := st.RecentWindow(5)
	require.Len(t, window, 5)
	assert.Equal(t, "m3", window[0].Content)
	assert.Equal(t, "m7", window[4].Content)
}

func TestAgentState_RecentWindow_ShortHistory(t *testing.T) {
	st := NewAgentState("only")
	assert.Nil(t, st.RecentWindow(5))

	st.AppendMessage("user", "only")
	assert.Nil(t, st.RecentWindow(5), "single message is the current query, no prior context")

	st.AppendMessage("user", "second")
	window := st.RecentWindow(5)
	require.Len(t, window, 1)
	assert.Equal(t, "only", window[0].Content)
}

func TestAgentState_Clone(t *testing.T) {
	st := NewAgentState("q")
	st.AppendMessage("user", "q")
	st.Metadata["key"] = "value"
	st.Results = append(st.Results, SearchResult{Title: "t"})
	st.AgentHistory = append(st.AgentHistory, HistoryEntry{Agent: "coordinator_agent"})

	clone := st.Clone()
	clone.AppendMessage("assistant", "a")
	clone.Metadata["key"] = "changed"
	clone.Results[0].Title = "changed"
	clone.AgentHistory = append(clone.AgentHistory, HistoryEntry{Agent: "search_agent"})

	assert.Len(t, st.Messages, 1)
	assert.Equal(t, "value", st.Metadata["key"])
	assert.Equal(t, "t", st.Results[0].Title)
	assert.Len(t, st.AgentHistory, 1)
}

func TestNewID_Unique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
