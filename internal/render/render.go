// Package render lays out a single slide into a Frame of terminal lines.
package render

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"ttydeck/internal/deck"
	"ttydeck/internal/highlight"
)

// Options control layout details shared by all slide kinds.
type Options struct {
	CodeMargin     int    // columns left of code lines
	BlockMargin    int    // columns left of block and table-of-contents lines
	TabWidth       int    // tab stop distance
	TopPadding     int    // blank lines above left-aligned slides
	OverflowMarker string // appended to truncated code lines
	MarkdownStyle  string // glamour style name, "auto" to detect
}

func DefaultOptions() Options {
	return Options{
		CodeMargin:     4,
		BlockMargin:    4,
		TabWidth:       4,
		TopPadding:     1,
		OverflowMarker: "…",
		MarkdownStyle:  "auto",
	}
}

// Frame is a rendered slide: one string per terminal row, possibly carrying
// ANSI styling. No line is wider than the width it was rendered for.
type Frame []string

func (f Frame) String() string { return strings.Join(f, "\n") }

// Width returns the display width of the widest line.
func (f Frame) Width() int {
	w := 0
	for _, l := range f {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

// Plain returns the frame with all styling removed.
func (f Frame) Plain() []string {
	out := make([]string, len(f))
	for i, l := range f {
		out[i] = ansi.Strip(l)
	}
	return out
}

// Renderer renders slides of one deck. It never modifies the deck.
type Renderer struct {
	deck *deck.Deck
	hl   highlight.Highlighter
	opts Options
	log  *slog.Logger

	mu sync.Mutex
	md map[int]*glamour.TermRenderer // by wrap width
}

// New returns a renderer for d. hl may be nil, in which case code is never
// highlighted. A nil logger discards.
func New(d *deck.Deck, hl highlight.Highlighter, opts Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	return &Renderer{
		deck: d,
		hl:   hl,
		opts: opts,
		log:  logger,
		md:   make(map[int]*glamour.TermRenderer),
	}
}

// Render lays out s for a width x height area.
func (r *Renderer) Render(s deck.Slide, width, height int) Frame {
	if width <= 0 || height <= 0 {
		return Frame{}
	}

	var lines []string
	switch s.Kind() {
	case deck.Center:
		lines = r.center(s, width, height)
	case deck.Code:
		lines = r.code(s, width)
	case deck.Block:
		lines = r.block(s, width)
	case deck.TableOfContents:
		lines = r.toc(s, width)
	case deck.Markdown:
		lines = r.markdown(s, width)
	default:
		r.log.Debug("unknown slide kind, rendering as block", slog.String("kind", s.Kind().String()))
		lines = r.block(s, width)
	}
	return clip(lines, width, height)
}

// clip enforces the frame bounds.
func clip(lines []string, width, height int) Frame {
	if len(lines) > height {
		lines = lines[:height]
	}
	f := make(Frame, len(lines))
	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			l = ansi.Truncate(l, width, "")
		}
		f[i] = l
	}
	return f
}

func (r *Renderer) padTop(lines []string) []string {
	if r.opts.TopPadding <= 0 {
		return lines
	}
	return append(make([]string, r.opts.TopPadding), lines...)
}
