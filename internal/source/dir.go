package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ttydeck/internal/deck"
)

const titleFile = "_title.md"

// LoadDir builds a deck from a slides directory. Every *.md file is one
// Markdown slide, in file name order; names starting with an underscore are
// skipped and _title.md holds the title. Each sub-directory becomes a section
// following the same rules, titled by its own _title.md or its name.
func LoadDir(dir string) (*deck.Deck, error) {
	b := deck.NewBuilder()
	if err := b.BeginDeck(readTitle(dir)); err != nil {
		return nil, err
	}
	if err := addDir(b, dir, 0); err != nil {
		return nil, err
	}
	return b.EndDeck()
}

func addDir(b *deck.Builder, dir string, depth int) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading slides: %w", err)
	}

	// Collect markdown files and section directories (excluding names starting with underscore)
	var names []string
	isDir := map[string]bool{}
	for _, file := range files {
		name := file.Name()
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case file.IsDir() && depth == 0:
			names = append(names, name)
			isDir[name] = true
		case !file.IsDir() && filepath.Ext(name) == ".md":
			names = append(names, name)
		}
	}

	// Sort names to ensure consistent order
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if isDir[name] {
			title := readTitle(path)
			if title == "" {
				title = name
			}
			if err := b.BeginSection(title); err != nil {
				return err
			}
			if err := addDir(b, path, depth+1); err != nil {
				return err
			}
			if err := b.EndSection(); err != nil {
				return err
			}
			continue
		}

		content, err := os.ReadFile(path) // #nosec G304 - file listed from the slides directory
		if err != nil {
			return fmt.Errorf("reading slide: %w", err)
		}
		if err := b.AddMarkdown(string(content)); err != nil {
			return &ParseError{File: path, Message: "slide", Err: err}
		}
	}
	return nil
}

// readTitle returns the trimmed contents of dir/_title.md, or "" if absent.
func readTitle(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, titleFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
