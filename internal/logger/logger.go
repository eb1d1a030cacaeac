package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"ebook-checkout/internal/config"
)

func New(logCfg *config.Log) *slog.Logger {
	return NewWithWriter(logCfg, os.Stdout)
}

func NewWithWriter(logCfg *config.Log, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(logCfg.Level)}

	var h slog.Handler
	if strings.EqualFold(logCfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
