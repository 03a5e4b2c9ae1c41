package schema

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("test message", "key", "value")
	l.Info("test message", "key", "value")
	l.Warn("test message", "key", "value")
	l.Error("test message", "key", "value")
	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		assert.NotNil(t, adapter.logger)
	})

	t.Run("levels and attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("debug message", "path", "api.json")
		adapter.Info("info message")
		adapter.Warn("warn message")
		adapter.Error("error message")
		adapter.With("component", "loader").Info("scoped")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG msg=\"debug message\" path=api.json")
		assert.Contains(t, out, "level=INFO msg=\"info message\"")
		assert.Contains(t, out, "level=WARN msg=\"warn message\"")
		assert.Contains(t, out, "level=ERROR msg=\"error message\"")
		assert.Contains(t, out, "component=loader")
	})
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, OrNop(nil))
	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, OrNop(adapter))
}

func TestLoaderLogsDegradedInput(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewLoader()
	l.Logger = NewSlogAdapter(slog.New(handler))

	_, err := l.LoadBytes([]byte("{"))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "using empty snapshot")
}
