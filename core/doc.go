// Package core provides the foundational domain types and interfaces used by
// TripMesh. It defines the core abstractions for:
//
//   - Agents (the units of work a turn is routed through)
//   - AgentState (the mutable record threaded through one turn's processing)
//   - Routes (the coordinator's closed routing decision set)
//   - Search results (normalized records returned by search providers)
//   - The checkpoint store contract for cross-turn conversation persistence
//
// The package intentionally keeps implementation concerns (persistence,
// graph orchestration, concrete agents, model providers) out of scope,
// exposing small interfaces so backends can be swapped at wiring time.
package core
