package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopDiscards(t *testing.T) {
	l := Nop()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.Error("ignored", "k", 1)
	assert.NotNil(t, OrNop(nil))
	assert.Same(t, l, OrNop(l))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "": slog.LevelInfo,
		"warning": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, slog.LevelWarn, "json")
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("model skipped", "model", "cube")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "model skipped", rec["msg"])
	assert.Equal(t, "cube", rec["model"])
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.Error(t, err)
}
