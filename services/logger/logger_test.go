package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, InfoLevel, ParseLevel("info"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, InfoLevel)

	l.Debug("hidden %d", 1)
	l.Info("Load error for user %s", "u1")
	l.Error("Save error: %v", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] Load error for user u1")
	assert.Contains(t, out, "[ERROR] Save error: boom")
}

func TestErrorLevelOnlyLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, ErrorLevel)

	l.Info("sign-in")
	l.Error("sign-out failed")

	assert.NotContains(t, buf.String(), "sign-in")
	assert.Contains(t, buf.String(), "sign-out failed")
}
