// Package logging provides a minimal logging interface and adapters for TripMesh.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the graph and agents use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - TripLogger with thread/turn context and domain helpers for model and
//     search provider call telemetry
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	g := graph.New(model, provider, func(o *graph.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
