package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}

func TestInitHonorsLevel(t *testing.T) {
	Init("error")
	ctx := context.Background()
	assert.False(t, Log.Enabled(ctx, slog.LevelInfo))
	assert.True(t, Log.Enabled(ctx, slog.LevelError))
}
