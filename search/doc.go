// Package search contains concrete core.SearchProvider implementations. The
// provider contract and the SearchResult type reside in the core package;
// depend on core.SearchProvider in your code and select an implementation
// (like Tavily below) at wiring time.
//
// Available providers:
//
//   - Tavily: requires an API key, supports basic/advanced depth modes
//   - Static: canned results for tests and demos
//   - Cache: TTL decorator for any provider, keyed by query and limit
//
// # Tavily Example
//
//	provider := search.NewTavily("your-api-key", "basic")
//	results, err := provider.Search(ctx, "flights from Delhi to Bangkok", 10)
package search
