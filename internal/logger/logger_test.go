package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{Level: "DEBUG"}.LogLevel())
	assert.Equal(t, slog.LevelWarn, Config{Level: "warning"}.LogLevel())
	assert.Equal(t, slog.LevelError, Config{Level: "error"}.LogLevel())
	assert.Equal(t, slog.LevelInfo, Config{Level: "nonsense"}.LogLevel())
}

func TestNewJSONCarriesBaseAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", ServiceName: "dndice", Version: "test", Environment: "dev"}, &buf)

	l.Info("rolled", "total", 17)
	l.Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rolled", entry["msg"])
	assert.Equal(t, "dndice", entry["service"])
	assert.Equal(t, "dev", entry["environment"])
	assert.EqualValues(t, 17, entry["total"])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok)

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.NotNil(t, FromContext(ctx))
}
