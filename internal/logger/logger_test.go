package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(&buf, FormatText, slog.LevelInfo)
		require.NoError(t, err)

		l.Debug("hidden")
		l.Info("opened", "version", "4.20")
		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "msg=opened")
		require.Contains(t, buf.String(), "version=4.20")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(&buf, "JSON", slog.LevelWarn)
		require.NoError(t, err)

		l.Warn("skipping channel", "channel", "speed")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "skipping channel", rec["msg"])
		require.Equal(t, "speed", rec["channel"])
		require.Equal(t, "WARN", rec["level"])
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(&buf, FormatPretty, slog.LevelDebug)
		require.NoError(t, err)

		l.With("file", "a b.mf4").WithGroup("cg").Debug("records", "count", 3)
		out := buf.String()
		require.Contains(t, out, "DEBUG")
		require.Contains(t, out, "records")
		require.Contains(t, out, `file="a b.mf4"`)
		require.Contains(t, out, "cg.count=3")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "xml", slog.LevelInfo)
		require.Error(t, err)
	})
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.False(t, l.Enabled(t.Context(), slog.LevelError))
	l.Error("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}
