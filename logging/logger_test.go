package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = (*TripLogger)(nil)
	_ Logger = NoOpLogger{}
)

func newBufferedLogger(level LogLevel) (*TripLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	cfg.Output = buf
	cfg.AddSource = false
	return NewLogger(cfg), buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &record))
	return record
}

func TestTripLoggerCarriesContext(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelDebug)

	logger.
		WithComponent("graph").
		WithThread("t1", "turn-9").
		WithContext("provider", "tavily").
		Info("node finished", "node", "search_agent")

	record := lastRecord(t, buf)
	assert.Equal(t, "node finished", record["msg"])
	assert.Equal(t, "graph", record["component"])
	assert.Equal(t, "t1", record["thread_id"])
	assert.Equal(t, "turn-9", record["turn_id"])
	assert.Equal(t, "tavily", record["provider"])
	assert.Equal(t, "search_agent", record["node"])
}

func TestTripLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("visible")
	assert.NotZero(t, buf.Len())
}

func TestTripLoggerWithIsACopy(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelInfo)

	scoped := logger.WithComponent("agent")
	logger.Info("base entry")

	record := lastRecord(t, buf)
	_, hasComponent := record["component"]
	assert.False(t, hasComponent)
	assert.NotNil(t, scoped)
}

func TestLogModelCall(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelInfo)

	logger.LogModelCall("gpt-4o-mini", 120*time.Millisecond, true, nil)
	record := lastRecord(t, buf)
	assert.Equal(t, "Model call completed", record["msg"])
	assert.Equal(t, "gpt-4o-mini", record["model"])
	assert.Equal(t, true, record["success"])

	logger.LogModelCall("gpt-4o-mini", time.Second, false, errors.New("rate limited"))
	record = lastRecord(t, buf)
	assert.Equal(t, "Model call failed", record["msg"])
	assert.Equal(t, "rate limited", record["error"])
}

func TestLogSearchCall(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelInfo)

	logger.LogSearchCall("tavily", 5, 300*time.Millisecond, nil)
	record := lastRecord(t, buf)
	assert.Equal(t, "Search completed", record["msg"])
	assert.Equal(t, "tavily", record["provider"])
	assert.Equal(t, float64(5), record["result_count"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"", LogLevelInfo},
		{"nonsense", LogLevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNewSlogLoggerFormats(t *testing.T) {
	assert.NotNil(t, NewSlogLogger(LogLevelInfo, "text", false))
	assert.NotNil(t, NewSlogLogger(LogLevelInfo, "json", true))
	assert.NotNil(t, NewDefaultSlogLogger())
}
