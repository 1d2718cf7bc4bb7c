// Package logging builds the process logger. The terminal belongs to the
// presentation, so records go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

type Options struct {
	Level string // debug, info, warn or error
	File  string // empty discards all records
	JSON  bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for opts and the closer for its output file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.File == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	var level slog.Level
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304 - path from config
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return slog.New(NewHandler(f, level, opts.JSON)), f, nil
}

// NewHandler returns a text or JSON handler writing to w.
func NewHandler(w io.Writer, level slog.Leveler, json bool) slog.Handler {
	ho := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, ho)
	}
	return slog.NewTextHandler(w, ho)
}
