package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *slog.Logger

func init() {
	// Auto-initialize with safe defaults for tests and development
	// Production code can override by calling Initialize() explicitly
	Initialize("info", false)
}

// Initialize sets up the global logger with the specified level and format
func Initialize(level string, useJSON bool) {
	Log = slog.New(newHandler(os.Stdout, level, useJSON))
	slog.SetDefault(Log)
}

// InitializeWithFile behaves like Initialize and also writes every record
// to a rolling file. An empty filename is the same as Initialize.
func InitializeWithFile(level string, useJSON bool, filename string) io.Closer {
	if filename == "" {
		Initialize(level, useJSON)
		return io.NopCloser(nil)
	}
	rolling := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	Log = slog.New(newHandler(io.MultiWriter(os.Stdout, rolling), level, useJSON))
	slog.SetDefault(Log)
	return rolling
}

func newHandler(w io.Writer, level string, useJSON bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}
	if useJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel converts string log level to slog.Level
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
