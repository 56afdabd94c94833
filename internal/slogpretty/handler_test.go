package slogpretty

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Handle(t *testing.T) {
	out := bytes.NewBuffer(nil)
	errOut := bytes.NewBuffer(nil)
	h := New(out, errOut, slog.LevelDebug)

	record := slog.NewRecord(time.Date(2024, 6, 26, 0, 0, 0, 0, time.UTC), slog.LevelDebug, "route resolved", 0)
	record.Add("path", "/admin/list")
	record.Add("matched", "/admin/list")
	record.Add("missing", "")
	record.Add("params", 1)
	record.Add("elapsed", 2*time.Millisecond)
	require.NoError(t, h.Handle(context.Background(), record))

	line := out.String()
	assert.Contains(t, line, "[TRAIL] ")
	assert.Contains(t, line, "2024-06-26 00:00:00")
	assert.Contains(t, line, "route resolved")
	assert.Contains(t, line, "path=")
	assert.Contains(t, line, "/admin/list")
	assert.Contains(t, line, "elapsed=")
	assert.Contains(t, line, fgYellow+"2ms")
	assert.Equal(t, byte('\n'), line[len(line)-1])
	assert.Empty(t, errOut.String())

	for _, lvl := range []slog.Level{slog.LevelInfo, slog.LevelWarn} {
		record.Level = lvl
		require.NoError(t, h.Handle(context.Background(), record))
	}
	assert.Empty(t, errOut.String())

	record = slog.NewRecord(time.Time{}, slog.LevelError, "route matching failed", 0)
	record.Add("error", "invalid matcher")
	require.NoError(t, h.Handle(context.Background(), record))
	assert.Contains(t, errOut.String(), fgRed+"invalid matcher")
	assert.NotContains(t, errOut.String(), "0001-01-01")
}

func TestHandler_Enabled(t *testing.T) {
	h := New(nil, nil, slog.LevelInfo)
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	out := bytes.NewBuffer(nil)
	logger := slog.New(New(out, out, slog.LevelDebug))

	logger.With("router", "main").WithGroup("route").Debug("route not found", slog.String("missing", "/foo"))
	assert.Contains(t, out.String(), "router=")
	assert.Contains(t, out.String(), "route.missing=")
	assert.Contains(t, out.String(), fgYellow+"route not found")
}
