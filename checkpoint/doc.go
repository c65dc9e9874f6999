// Package checkpoint houses concrete implementations of the
// core.CheckpointStore. The interface itself lives in the core package to
// centralize domain contracts; keeping only implementations here prevents
// higher level packages (agents, graph) from depending on concrete storage.
//
// The in-memory store below is the fallback when no durable backend is
// configured: conversation threads do not survive a process restart in that
// mode. Add durable backends (Redis, Postgres, etc.) in sub-packages without
// changing any calling code; only the wiring layer needs to decide which
// implementation to instantiate.
package checkpoint
