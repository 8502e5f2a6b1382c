package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLogLevel maps a config string to a zerolog level. Unknown values fall back to info.
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewConsoleLogger writes human-readable logs to w. Used by serve and the CLI commands.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(ParseLogLevel(level)).With().
		Timestamp().
		Str("app", "jadoo").
		Logger()
}

// InitDebugLog returns a file logger at <dataDir>/debug.log when debug is on.
// The TUI owns the terminal, so without debug it logs nowhere. The returned
// closer must be called on exit.
func InitDebugLog(dataDir string, debug bool, level string) (zerolog.Logger, io.Closer) {
	if !debug {
		return zerolog.Nop(), nopCloser{}
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: may contain conversation text
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return zerolog.Nop(), nopCloser{}
	}

	lvl := ParseLogLevel(level)
	if lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	logger := zerolog.New(f).Level(lvl).With().
		Timestamp().
		Caller().
		Str("app", "jadoo").
		Logger()
	logger.Debug().Str("path", logPath).Msg("debug logging started")

	return logger, f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
