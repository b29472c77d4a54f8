// Package logger provides the process-wide structured logger.
// Level and format come from the environment: LOG_LEVEL (DEBUG/INFO/WARN/ERROR,
// or SPLITDESK_DEBUG=1 for debug) and LOG_FORMAT (text/json).
//
// The TUI owns stdout, so logs always go to stderr; redirect it to a file when
// debugging (`splitdesk 2>debug.log`).
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	logger   *slog.Logger
	logLevel slog.Level
	once     sync.Once
)

// Initialize sets up the logger from the environment. Safe to call more than
// once; only the first call takes effect.
func Initialize() {
	once.Do(func() {
		levelStr := os.Getenv("LOG_LEVEL")
		if levelStr == "" {
			if v := os.Getenv("SPLITDESK_DEBUG"); v == "1" || v == "true" {
				levelStr = "DEBUG"
			} else {
				levelStr = "INFO"
			}
		}

		switch strings.ToUpper(levelStr) {
		case "DEBUG":
			logLevel = slog.LevelDebug
		case "WARN", "WARNING":
			logLevel = slog.LevelWarn
		case "ERROR":
			logLevel = slog.LevelError
		default:
			logLevel = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: logLevel}
		var handler slog.Handler
		if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}
		logger = slog.New(handler)
	})
}

// GetLogger returns the shared logger, initializing it if needed.
func GetLogger() *slog.Logger {
	if logger == nil {
		Initialize()
	}
	return logger
}

// GetLevel returns the configured level.
func GetLevel() slog.Level {
	if logger == nil {
		Initialize()
	}
	return logLevel
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
