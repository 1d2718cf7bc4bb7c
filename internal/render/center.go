package render

import (
	"log/slog"

	"ttydeck/internal/deck"
	"ttydeck/internal/markup"
	"ttydeck/internal/styled"
)

// headlineGap is the number of blank lines between a center slide's body and
// its headline.
const headlineGap = 2

func (r *Renderer) center(s deck.Slide, width, height int) []string {
	block := r.centerBlock(s.Body(), width, styled.Style{})
	if h, ok := s.Headline(); ok {
		block = append(block, make([]string, headlineGap)...)
		block = append(block, r.centerBlock(h, width, styled.Style{Italic: true})...)
	}

	if len(block) > height {
		block = block[:height]
	}
	top := (height - len(block)) / 2
	return append(make([]string, top), block...)
}

func (r *Renderer) centerBlock(text string, width int, extra styled.Style) []string {
	parsed, unknown := markup.Lines(text)
	if len(unknown) > 0 {
		r.log.Debug("unknown style tags", slog.Any("tags", unknown))
	}

	var out []string
	for _, l := range trimBlankEdges(parsed) {
		l = trimLine(expandTabs(l, r.opts.TabWidth))
		if len(l) == 0 {
			out = append(out, centerLine("", width))
			continue
		}
		for _, wrapped := range wrapLine(withStyle(l, extra).Render(), width) {
			out = append(out, centerLine(wrapped, width))
		}
	}
	return out
}
