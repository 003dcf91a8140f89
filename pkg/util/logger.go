package util

import (
	"io"
	"log/slog"
	"os"

	"github.com/sulthanallaudeen/priya-task/pkg/config"
)

// NewLogger builds the process logger from the server config. Development
// gets readable text at debug level; any other environment gets JSON at
// info level for log shipping.
func NewLogger(server *config.ServerConfig) *slog.Logger {
	return newLogger(server, os.Stdout)
}

func newLogger(server *config.ServerConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if server.IsDevelopment() {
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}
