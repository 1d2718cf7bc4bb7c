package render

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"ttydeck/internal/deck"
	"ttydeck/internal/styled"
)

// code lays out a code slide. Lines are never wrapped: a line wider than the
// space right of the margin is truncated and ends in the overflow marker.
func (r *Renderer) code(s deck.Slide, width int) []string {
	margin := r.opts.CodeMargin
	if margin >= width {
		margin = 0
	}
	avail := width - margin
	pad := strings.Repeat(" ", margin)

	body := strings.TrimSuffix(s.Body(), "\n")
	lines := r.highlight(body, s.Language())

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = expandTabs(l, r.opts.TabWidth)
		rendered := l.Render()
		if l.Width() > avail {
			rendered = ansi.Truncate(rendered, avail, r.opts.OverflowMarker)
		}
		out = append(out, pad+rendered)
	}
	return r.padTop(out)
}

// highlight returns body as styled lines, falling back to plain text when
// there is no language, no highlighter, or highlighting fails.
func (r *Renderer) highlight(body, language string) []styled.Line {
	if language == "" || r.hl == nil {
		return styled.Split(body)
	}
	lines, err := r.hl.Highlight(body, language)
	if err != nil {
		r.log.Debug("highlighting failed, using plain text",
			slog.String("language", language),
			slog.Any("error", err),
		)
		return styled.Split(body)
	}
	return lines
}
