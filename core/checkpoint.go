package core

// CheckpointStore persists per-thread state snapshots so a conversation can
// be resumed by thread id. Snapshots are written after each executed graph
// node and read once at the start of a turn.
//
// Concurrency: implementations must support concurrent reads and serialize
// writes per thread. Concurrent turns on the same thread id are
// last-write-wins; callers that care must serialize turns themselves.
type CheckpointStore interface {
	// Load returns the latest snapshot for a thread. A missing thread is
	// reported via an error (e.g. checkpoint.ErrThreadNotFound); callers
	// treat any load failure as "new conversation".
	Load(threadID string) (*AgentState, error)

	// Save stores a snapshot, replacing any previous one for the thread.
	Save(threadID string, state *AgentState) error

	// Merge applies a shallow key/value merge onto the stored snapshot.
	// Used for administrative state overrides.
	Merge(threadID string, values map[string]any) error
}
