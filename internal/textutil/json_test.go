package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"bare object", `{"a":"b"}`, `{"a":"b"}`, true},
		{"wrapped in prose", `Sure! Here you go: {"a":"b"} hope that helps`, `{"a":"b"}`, true},
		{"nested object", `{"a":{"b":"c"}}`, `{"a":{"b":"c"}}`, true},
		{"brace inside string", `{"a":"}{"}`, `{"a":"}{"}`, true},
		{"unterminated", `{"a":"b"`, "", false},
		{"no object", "plain text", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstJSONObject(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstJSONArray(t *testing.T) {
	got, ok := FirstJSONArray("Results below:\n```json\n[{\"a\":\"1\"},{\"a\":\"2\"}]\n```")
	require.True(t, ok)
	assert.Equal(t, `[{"a":"1"},{"a":"2"}]`, got)

	_, ok = FirstJSONArray("nothing here")
	assert.False(t, ok)
}

func TestFlatJSONObjects(t *testing.T) {
	input := `first {"airline":"IndiGo","price":"₹25,000"} then {"airline":"Air India","price":"₹30,000"}`
	objects := FlatJSONObjects(input)
	require.Len(t, objects, 2)
	assert.Contains(t, objects[0], "IndiGo")
	assert.Contains(t, objects[1], "Air India")
}

func TestFlatJSONObjects_Nested(t *testing.T) {
	// The outer object has a non-string value and is not matched; the inner
	// flat object is.
	objects := FlatJSONObjects(`{"a":{"b":"c"}}`)
	require.Len(t, objects, 1)
	assert.Equal(t, `{"b":"c"}`, objects[0])
}
