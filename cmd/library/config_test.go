package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/pkg/environment"
)

func TestAppConfigLevel(t *testing.T) {
	t.Parallel()

	_, ok, err := appConfig{}.level()
	require.NoError(t, err)
	assert.False(t, ok)

	lvl, ok, err := appConfig{LogLevel: "warn"}.level()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, _, err = appConfig{LogLevel: "loud"}.level()
	assert.ErrorIs(t, err, errLogLevel)
}

func TestNewLoggerLevel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	preset := newLogger(appConfig{Env: environment.Production})
	assert.False(t, preset.Enabled(ctx, slog.LevelDebug))

	override := newLogger(appConfig{Env: environment.Production, LogLevel: "debug"})
	assert.True(t, override.Enabled(ctx, slog.LevelDebug))
}
