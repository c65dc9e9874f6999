// Package model defines the provider-agnostic abstraction for the external
// reasoning service used by TripMesh agents.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent: a
//     request is a system instruction plus an ordered message transcript,
//     a response is plain text
//   - Every call is stateless; agents supply all needed context explicitly
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so higher layers (agents, graph) remain decoupled from vendor SDKs.
package model
