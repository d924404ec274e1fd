package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the process logger: JSON in production, text otherwise.
func New(production bool) *slog.Logger {
	return NewWithWriter(os.Stdout, production)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(w io.Writer, production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
