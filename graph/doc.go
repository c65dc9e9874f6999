// Package graph wires the coordinator, search and planner agents into a
// fixed two-hop workflow: every turn enters at the coordinator, which either
// answers directly or hands off to exactly one specialist. State is
// checkpointed per thread after every node so multi-turn conversations
// survive between calls.
package graph
