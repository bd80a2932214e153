package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  int
	}{
		{"debug level", "debug", 0},
		{"info level", "info", 1},
		{"warn level", "WARN", 2},
		{"error level", "error", 3},
		{"invalid level falls back to info", "invalid", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.level).(*implLogger)
			assert.Equal(t, tt.want, l.level)
		})
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"error always logs", "debug", "error", true},
		{"warn suppressed at error level", "error", "warn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.configLevel).(*implLogger)
			assert.Equal(t, tt.shouldLog, l.shouldLog(tt.logLevel))
		})
	}
}

func TestRequestIDPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("debug", &buf)

	ctx := WithRequestID(context.Background(), "req-42")
	l.Info(ctx, "summarizing %s", "https://example.com")

	assert.Contains(t, buf.String(), "[INFO] [req-42] summarizing https://example.com")
	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("warn", &buf)
	ctx := context.Background()

	l.Debug(ctx, "debug message")
	l.Info(ctx, "info message")
	assert.Empty(t, buf.String())

	l.Warn(ctx, "warn message")
	l.Error(ctx, "error message")
	assert.Contains(t, buf.String(), "[WARN] warn message")
	assert.Contains(t, buf.String(), "[ERROR] error message")
}
