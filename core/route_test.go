package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Route
	}{
		{"exact planner", "planner_agent", RoutePlanner},
		{"exact search", "search_agent", RouteSearch},
		{"exact end", "end", RouteEnd},
		{"upper case", "PLANNER_AGENT", RoutePlanner},
		{"embedded in sentence", "I would route this to the search_agent.", RouteSearch},
		{"planner wins over search", "planner_agent or search_agent", RoutePlanner},
		{"surrounding whitespace", "  end  ", RouteEnd},
		{"ambiguous noise defaults to end", "I'm not sure what you mean", RouteEnd},
		{"empty defaults to end", "", RouteEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRoute(tt.raw))
		})
	}
}
