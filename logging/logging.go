// Package logging builds the structured loggers used across the simulator.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// BuildLogger creates a logger writing to w. Level is one of debug, info,
// warn, error; format is json or text.
func BuildLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	ops := &slog.HandlerOptions{
		AddSource: lvl == slog.LevelDebug,
		Level:     lvl,
	}

	switch strings.ToLower(format) {
	case "", FormatJSON:
		return slog.New(slog.NewJSONHandler(w, ops)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(w, ops)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ParseLevel converts a level name into a slog level.
func ParseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if level == "" {
		return slog.LevelInfo, nil
	}

	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("unknown log level %q", level)
	}

	return lvl, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ErrAttr wraps an error as a log attribute.
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
