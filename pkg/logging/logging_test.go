package logging_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/georecon/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
	assert.NotContains(t, output, "debug message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithRunID(ctx, "run-123")
	ctx = logging.WithMode(ctx, "labels")
	ctx = logging.WithLabel(ctx, "South-Korea")
	ctx = logging.WithSource(ctx, "map")

	logging.FromContext(ctx).Info().Msg("resolving")

	testLogger.AssertContains(t, `"run_id":"run-123"`)
	testLogger.AssertContains(t, `"mode":"labels"`)
	testLogger.AssertContains(t, `"label":"South-Korea"`)
	testLogger.AssertContains(t, `"source":"map"`)
	assert.Equal(t, "run-123", logging.RunID(ctx))
	assert.True(t, logging.HasLogger(ctx))
}

func TestContextWithoutLogger(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Empty(t, logging.RunID(context.Background()))
	assert.False(t, logging.HasLogger(context.Background()))
}

func TestWithError(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	assert.Equal(t, ctx, logging.WithError(ctx, nil))

	ctx = logging.WithError(ctx, errors.New("sheet missing"))
	ctx = logging.WithFields(ctx, map[string]any{"row": 7, "skipped": true})
	logging.Ctx(ctx).Warn().Msg("skipping")

	testLogger.AssertContains(t, `"error":"sheet missing"`)
	testLogger.AssertContains(t, `"row":7`)
	testLogger.AssertContains(t, `"skipped":true`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	path := filepath.Join(t.TempDir(), "georecon.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: path,
		Fields: map[string]any{"app": "georecon"},
	})

	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	output := string(data)
	assert.Contains(t, output, "kept")
	assert.Contains(t, output, `"app":"georecon"`)
	assert.False(t, strings.Contains(output, "dropped"))
}

func TestCaptureLoggingForTest(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)
	logging.Info().Str("label", "Aland").Msg("overwriting continent")

	assert.Equal(t, 1, captured.Count())
	captured.AssertContains(t, "overwriting continent")
	captured.AssertNotContains(t, "no continent found")
}
