package render

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"

	"ttydeck/internal/deck"
)

const (
	// markdownMargin is the room left beside glamour's word wrap.
	markdownMargin = 4
	// Below this width glamour's own margins leave no room for text.
	minMarkdownWidth = 20
)

func (r *Renderer) markdown(s deck.Slide, width int) []string {
	if width < minMarkdownWidth {
		return r.block(s, width)
	}
	tr, err := r.termRenderer(width - markdownMargin)
	if err != nil {
		r.log.Debug("markdown renderer unavailable, using plain text", slog.Any("error", err))
		return r.block(s, width)
	}

	out, err := tr.Render(s.Body())
	if err != nil {
		r.log.Debug("rendering markdown failed, using plain text", slog.Any("error", err))
		return r.block(s, width)
	}
	return r.padTop(strings.Split(strings.TrimRight(out, "\n"), "\n"))
}

// termRenderer returns a glamour renderer wrapping at wrap columns, built
// once per width.
func (r *Renderer) termRenderer(wrap int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.md[wrap]; ok {
		return tr, nil
	}

	style := glamour.WithAutoStyle()
	if r.opts.MarkdownStyle != "" && r.opts.MarkdownStyle != "auto" {
		style = glamour.WithStandardStyle(r.opts.MarkdownStyle)
	}
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, err
	}
	r.md[wrap] = tr
	return tr, nil
}
