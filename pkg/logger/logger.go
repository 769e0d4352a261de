package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is usable before Init; it falls back to the slog default logger.
var Log = slog.Default()

// Options controls the level and the optional rotating file sink.
type Options struct {
	Level      string
	File       string // empty = stdout only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var fileWriter *lumberjack.Logger

func Init(opts Options) {
	var out io.Writer = os.Stdout
	if opts.File != "" {
		fileWriter = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB, // MB
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})
	Log = slog.New(handler)
}

// Close flushes and closes the rotating file, if any.
func Close() error {
	if fileWriter != nil {
		return fileWriter.Close()
	}
	return nil
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
