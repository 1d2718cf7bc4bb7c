package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"ttydeck/internal/deck"
	"ttydeck/internal/markup"
	"ttydeck/internal/styled"
)

const defaultTOCTitle = "Table of Contents"

// block lays out text left-aligned behind the block margin. Indentation and
// inner blank lines are kept; lines too wide for the slide wrap.
func (r *Renderer) block(s deck.Slide, width int) []string {
	margin := r.opts.BlockMargin
	if margin >= width {
		margin = 0
	}
	pad := strings.Repeat(" ", margin)

	parsed, unknown := markup.Lines(s.Body())
	if len(unknown) > 0 {
		r.log.Debug("unknown style tags", slog.Any("tags", unknown))
	}

	var out []string
	for _, l := range trimBlankEdges(parsed) {
		l = expandTabs(l, r.opts.TabWidth)
		if len(l) == 0 {
			out = append(out, "")
			continue
		}
		for _, wrapped := range wrapLine(l.Render(), width-margin) {
			out = append(out, pad+wrapped)
		}
	}
	return r.padTop(out)
}

// toc lists the deck's sections, numbered from 1, indented by depth.
func (r *Renderer) toc(s deck.Slide, width int) []string {
	margin := r.opts.BlockMargin
	if margin >= width {
		margin = 0
	}
	avail := width - margin
	pad := strings.Repeat(" ", margin)

	title, ok := s.Headline()
	if !ok {
		title = defaultTOCTitle
	}
	heading := styled.Line{{Text: markup.Strip(title), Style: styled.Style{Bold: true, Underline: true}}}

	out := []string{pad + ansi.Truncate(heading.Render(), avail, r.opts.OverflowMarker), ""}

	entries := r.deck.TOCEntries()
	if len(entries) == 0 {
		return r.padTop(append(out, pad+"(no sections)"))
	}
	for i, e := range entries {
		name := e.Title
		if name == "" {
			name = "(untitled)"
		}
		line := fmt.Sprintf("%s%d. %s", strings.Repeat("  ", e.Depth), i+1, name)
		if ansi.StringWidth(line) > avail {
			line = ansi.Truncate(line, avail, r.opts.OverflowMarker)
		}
		out = append(out, pad+line)
	}
	return r.padTop(out)
}
