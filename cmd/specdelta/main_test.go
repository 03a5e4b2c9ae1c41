package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"dif", "diff"},
		{"difff", "diff"},
		{"coverge", "coverage"},
		{"covrage", "coverage"},
		{"valiate", "validate"},
		{"vlidate", "validate"},
		{"chnagelog", "changelog"},
		{"changlog", "changelog"},
		{"inspct", "inspect"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"validatation", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("diff", "diff"))
	assert.Equal(t, 4, editDistance("", "diff"))
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, logLevel(""))
	assert.Equal(t, slog.LevelWarn, logLevel("loud"))
	assert.Equal(t, slog.LevelDebug, logLevel("debug"))
	assert.Equal(t, slog.LevelError, logLevel("ERROR"))
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("version", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 0, run(ctx, "--version", nil, &stdout, &stderr))
		assert.Contains(t, stdout.String(), "specdelta v")
	})

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 0, run(ctx, "help", nil, &stdout, &stderr))
		assert.Contains(t, stdout.String(), "Commands:")
	})

	t.Run("unknown command suggests", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run(ctx, "dif", nil, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "Unknown command: dif")
		assert.Contains(t, stderr.String(), "Did you mean 'diff'?")
	})

	t.Run("command error", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run(ctx, "inspect", nil, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "Error: inspect command requires")
	})

	t.Run("failed check prints no error", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(ctx, "coverage", []string{
			"../../testdata/snapshots/api-v2.json",
			"../../testdata/snapshots/generated.rs",
		}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stdout.String(), "Result: FAILED")
		assert.NotContains(t, stderr.String(), "Error:")
	})

	t.Run("diff succeeds", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(ctx, "diff", []string{
			"../../testdata/snapshots/api-v1.json",
			"../../testdata/snapshots/api-v2.json",
		}, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout.String(), "API Schema Diff")
	})
}
