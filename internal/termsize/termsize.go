// Package termsize reports terminal dimensions for commands that print frames
// without taking over the terminal.
package termsize

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Size returns the size of the terminal behind f. When f is not a terminal
// it falls back to $COLUMNS and $LINES, then to 80x24.
func Size(f *os.File) (width, height int) {
	if IsTerminal(f) {
		if w, h, err := term.GetSize(f.Fd()); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (width, height int) {
	width, height = DefaultWidth, DefaultHeight
	if n, err := strconv.Atoi(getenv("COLUMNS")); err == nil && n > 0 {
		width = n
	}
	if n, err := strconv.Atoi(getenv("LINES")); err == nil && n > 0 {
		height = n
	}
	return width, height
}
