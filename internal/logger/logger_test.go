package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := defaultLogger
	SetDefault(New(&buf, level, "json"))
	t.Cleanup(func() { SetDefault(prev) })
	return &buf
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestRejectionAndFault(t *testing.T) {
	buf := capture(t, "info")

	Rejection("IssueRental", errors.New("forbidden"), "rental_id", "r1")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "IssueRental", entry["operation"])
	assert.Equal(t, "forbidden", entry["reason"])
	assert.Equal(t, "r1", entry["rental_id"])

	buf.Reset()
	Fault("IssueRental", errors.New("connection refused"))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "infrastructure", entry["class"])
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	buf := capture(t, "info")
	EnterMethod("CreateRental")
	DatabaseCall("SELECT", "rents")
	assert.Zero(t, buf.Len())
}
