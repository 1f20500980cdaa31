package config

import (
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnv overrides the log level when --verbose is not given.
const LogLevelEnv = "WBUILD_LOG_LEVEL"

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// NormalizeLogLevel canonicalizes user input, falling back to info.
func NormalizeLogLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Slog maps the level onto slog.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolveLogLevel picks the effective level: verbose wins, then WBUILD_LOG_LEVEL, then info.
func ResolveLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return NormalizeLogLevel(os.Getenv(LogLevelEnv)).Slog()
}
