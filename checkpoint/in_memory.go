package checkpoint

import (
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/tripmesh/core"
)

// InMemoryStore is a volatile CheckpointStore implementation keeping thread
// snapshots in a process local map. It is safe for concurrent access and best
// suited for tests or ephemeral demo servers. Snapshots are cloned on both
// save and load so no caller can mutate stored state through a retained
// reference. Writes to the same thread are last-write-wins.
type InMemoryStore struct {
	mu      sync.RWMutex
	threads map[string]*core.AgentState
}

// NewInMemoryStore constructs an empty in-memory checkpoint store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{threads: make(map[string]*core.AgentState)}
}

// Load returns a clone of the latest snapshot for a thread, or
// ErrThreadNotFound when the thread has no history yet.
func (s *InMemoryStore) Load(threadID string) (*core.AgentState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.threads[threadID]
	if !ok {
		return nil, ErrThreadNotFound
	}
	return st.Clone(), nil
}

// Save stores a clone of the provided state snapshot, replacing any previous
// snapshot for the thread.
func (s *InMemoryStore) Save(threadID string, state *core.AgentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[threadID] = state.Clone()
	return nil
}

// Merge applies a shallow key/value merge onto the stored snapshot. Known
// state fields are updated by name; anything else lands in Metadata. Merging
// into a missing thread creates an empty snapshot first.
func (s *InMemoryStore) Merge(threadID string, values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.threads[threadID]
	if !ok {
		st = core.NewAgentState("")
		s.threads[threadID] = st
	}
	applyValues(st, values)
	return nil
}

// Threads returns the ids of all threads with a stored snapshot. The slice
// is a snapshot and safe for caller mutation.
func (s *InMemoryStore) Threads() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.threads))
	for id := range s.threads {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Delete removes a thread's snapshot. Deleting an unknown thread is a no-op.
func (s *InMemoryStore) Delete(threadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.threads, threadID)
}

func applyValues(st *core.AgentState, values map[string]any) {
	for k, v := range values {
		switch k {
		case "query":
			if s, ok := v.(string); ok {
				st.Query = s
			}
		case "context":
			if s, ok := v.(string); ok {
				st.Context = s
			}
		case "response":
			if s, ok := v.(string); ok {
				st.Response = s
			}
		case "error":
			if s, ok := v.(string); ok {
				st.Error = s
			}
		case "current_agent":
			if s, ok := v.(string); ok {
				st.CurrentAgent = s
			}
		case "metadata":
			if m, ok := v.(map[string]any); ok {
				for mk, mv := range m {
					st.Metadata[mk] = mv
				}
			}
		default:
			st.Metadata[k] = v
		}
	}
	st.UpdatedAt = time.Now()
}
