package logging_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tourvault/pkg/logging"
)

func TestSetDefault(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Info().Msg("info message")
	logging.Err(errors.New("boom")).Msg("failed")

	assert.Contains(t, buf.String(), "info message")
	assert.Contains(t, buf.String(), "boom")
}

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithOperation(ctx, "remove")
	ctx = logging.WithVideo(ctx, "dQw4w9WgXcQ")
	ctx = logging.WithFields(ctx, map[string]any{
		"attempt": 1,
		"elapsed": 2 * time.Second,
		"error":   errors.New("nope"),
	})

	logging.FromContext(ctx).Info().Msg("done")

	tl.AssertContains(t, `"operation":"remove"`)
	tl.AssertContains(t, `"video_id":"dQw4w9WgXcQ"`)
	tl.AssertContains(t, `"attempt":1`)
	tl.AssertContains(t, `"error":"nope"`)
	assert.Len(t, tl.Lines(), 1)
}

func TestFromContext_Default(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
}

func TestNewLoggerFromConfig(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	path := filepath.Join(t.TempDir(), "tourvault.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warning",
		Format: "json",
		Output: path,
		Fields: map[string]any{"service": "tourvault"},
	})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
	assert.Contains(t, string(data), `"service":"tourvault"`)
}

func TestNewLoggerFromConfig_Nil(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	logger := logging.NewLoggerFromConfig(nil)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewNopLogger(t *testing.T) {
	logger := logging.NewNopLogger()
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
