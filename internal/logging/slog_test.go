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

func newBufLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	l, buf := newBufLogger()
	l.Info(ctx, "hello", "k", "v")
	rec := lastRecord(t, buf)
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "v", rec["k"])

	l, buf = newBufLogger()
	l.Warn(ctx, "careful")
	assert.Equal(t, "WARN", lastRecord(t, buf)["level"])

	l, buf = newBufLogger()
	l.Error(ctx, "broken")
	assert.Equal(t, "ERROR", lastRecord(t, buf)["level"])
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufLogger()
	child := l.With("component", "inbox")
	child.Info(context.Background(), "refresh")
	rec := lastRecord(t, buf)
	assert.Equal(t, "inbox", rec["component"])
}
