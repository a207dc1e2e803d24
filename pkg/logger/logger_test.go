package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Encoding: "json", Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-42")
	WithRequestID(ctx, log).Debug("hello")
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "loud", Output: &buf})
	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithRequestIDWithoutID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.NotNil(t, WithRequestID(context.Background(), nil))
}
