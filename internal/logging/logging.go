// Package logging builds the zerolog logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the console level and format, and the JSON lines file
// that receives every event down to debug.
type Options struct {
	Level    string
	Format   string // json or console
	Output   io.Writer
	DebugLog string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and the closer for its debug file. A debug file that
// cannot be opened is reported on the console and skipped.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	var console io.Writer = out
	if opts.Format != "json" {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{Writer: zerolog.LevelWriterAdapter{Writer: console}, Level: level},
	}

	var closer io.Closer = nopCloser{}
	var openErr error
	if opts.DebugLog != "" {
		f, err := openDebugLog(opts.DebugLog)
		if err != nil {
			openErr = err
		} else {
			writers = append(writers, f)
			closer = f
		}
	}

	minLevel := level
	if len(writers) > 1 && zerolog.DebugLevel < minLevel {
		minLevel = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(minLevel).
		With().
		Timestamp().
		Str("service", "weatherbot").
		Logger()

	if openErr != nil {
		logger.Warn().Err(openErr).Str("path", opts.DebugLog).Msg("debug log disabled")
	}
	return logger, closer, nil
}

// ParseLevel maps a config level name to a zerolog level; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

func openDebugLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
