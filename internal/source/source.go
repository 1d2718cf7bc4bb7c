// Package source turns deck files on disk into the Builder call sequence.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ttydeck/internal/deck"
)

// ErrUnsupportedFormat is returned for paths that are neither a directory nor
// a known deck file.
var ErrUnsupportedFormat = errors.New("unsupported deck format")

// ParseError reports a problem in a deck file. Line is 1-indexed and zero
// when the position is unknown.
type ParseError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap classifies every parse error as malformed deck input unless a more
// specific cause was recorded.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return deck.ErrMalformedOptions
}

// Load reads the deck at path. Directories use the slides-directory layout;
// files are dispatched on their extension.
func Load(path string) (*deck.Deck, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is the deck named by the user
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	case ".toml":
		return ParseTOML(path, data)
	case ".md", ".markdown":
		return ParseMarkdown(path, data)
	}
	return nil, &ParseError{File: path, Message: "cannot read this file as a deck", Err: ErrUnsupportedFormat}
}
