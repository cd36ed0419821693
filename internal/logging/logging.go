// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	// Default: info.
	Level string

	// Format is "console" or "json". Default: console.
	Format string

	// File, when set, receives log output instead of Output.
	File string

	// Output is the destination when File is empty. Default: os.Stderr.
	Output io.Writer
}

var (
	mu     sync.RWMutex
	base   = zerolog.Nop()
	closer io.Closer
)

// Init replaces the base logger. It returns a function that releases any
// file opened for output.
func Init(cfg Config) (func() error, error) {
	level := zerolog.InfoLevel
	if name := strings.TrimSpace(cfg.Level); name != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(name))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var file *os.File
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		file = f
		out = f
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console", "text":
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    file != nil,
		}
	case "json":
	default:
		if file != nil {
			_ = file.Close()
		}
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()

	mu.Lock()
	prev := closer
	base = logger
	closer = nil
	if file != nil {
		closer = file
	}
	mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		if closer == nil {
			return nil
		}
		err := closer.Close()
		closer = nil
		base = zerolog.Nop()
		return err
	}, nil
}

// Logger returns the base logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// Discard silences logging until the next Init.
func Discard() {
	mu.Lock()
	base = zerolog.Nop()
	mu.Unlock()
}
