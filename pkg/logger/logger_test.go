package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewLogger(nil)
		ctx := ContextWithLogger(t.Context(), expected)

		actual := FromContext(ctx)

		require.NotNil(t, actual)
		assert.Equal(t, expected, actual)
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		l := FromContext(t.Context())
		require.NotNil(t, l)
	})

	t.Run("Should return default logger when a nil logger is in context", func(t *testing.T) {
		ctx := ContextWithLogger(t.Context(), nil)
		l := FromContext(ctx)
		require.NotNil(t, l)
	})
}

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	t.Run("Should convert all log levels to charm log levels correctly", func(t *testing.T) {
		cases := []struct {
			level    LogLevel
			expected int
		}{
			{DebugLevel, -4},
			{InfoLevel, 0},
			{WarnLevel, 4},
			{ErrorLevel, 8},
			{DisabledLevel, 1000},
			{LogLevel("unknown"), 0},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.expected, int(tc.level.ToCharmlogLevel()))
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should create logger with provided config", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: InfoLevel, Output: &buf})
		l.Info("test message")
		assert.Contains(t, buf.String(), "test message")
	})

	t.Run("Should create logger with JSON formatting when enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})
		l.Info("test message")
		output := buf.String()
		assert.True(t, strings.Contains(output, "{") && strings.Contains(output, "}"))
	})
}

func TestLogger_With(t *testing.T) {
	t.Run("Should create logger with additional context fields", func(t *testing.T) {
		var buf bytes.Buffer
		base := NewLogger(&Config{Level: InfoLevel, Output: &buf})
		contextual := base.With("component", "test")
		contextual.Info("operation completed")
		output := buf.String()
		assert.Contains(t, output, "component")
		assert.Contains(t, output, "operation completed")
	})
}
