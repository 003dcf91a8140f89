package util

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sulthanallaudeen/priya-task/pkg/config"
)

func TestNewLogger_Development(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&config.ServerConfig{Env: "development"}, &buf)

	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger.Debug("booting", "port", 5000)
	out := buf.String()
	assert.Contains(t, out, "msg=booting")
	assert.Contains(t, out, "port=5000")
}

func TestNewLogger_Production(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&config.ServerConfig{Env: "production"}, &buf)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))

	logger.Info("listening", "addr", "0.0.0.0:5000")
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"), "production logs should be JSON: %s", line)
	assert.Contains(t, line, `"msg":"listening"`)
}
