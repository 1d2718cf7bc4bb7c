package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"ttydeck/internal/styled"
)

// expandTabs replaces tabs with spaces up to the next tab stop, counting
// columns across segments.
func expandTabs(l styled.Line, tabWidth int) styled.Line {
	col := 0
	out := make(styled.Line, 0, len(l))
	for _, seg := range l {
		if !strings.ContainsRune(seg.Text, '\t') {
			col += ansi.StringWidth(seg.Text)
			out = append(out, seg)
			continue
		}
		var sb strings.Builder
		for _, r := range seg.Text {
			if r == '\t' {
				n := tabWidth - col%tabWidth
				sb.WriteString(strings.Repeat(" ", n))
				col += n
				continue
			}
			sb.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
		out = append(out, styled.Segment{Text: sb.String(), Style: seg.Style})
	}
	return out
}

// trimLine strips leading and trailing blanks.
func trimLine(l styled.Line) styled.Line {
	out := append(styled.Line(nil), l...)
	for len(out) > 0 {
		out[0].Text = strings.TrimLeft(out[0].Text, " \t")
		if out[0].Text != "" {
			break
		}
		out = out[1:]
	}
	for len(out) > 0 {
		n := len(out) - 1
		out[n].Text = strings.TrimRight(out[n].Text, " \t")
		if out[n].Text != "" {
			break
		}
		out = out[:n]
	}
	return out
}

// trimBlankEdges drops blank lines before the first and after the last line
// with content.
func trimBlankEdges(lines []styled.Line) []styled.Line {
	blank := func(l styled.Line) bool { return strings.TrimSpace(l.String()) == "" }
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// wrapLine breaks a rendered line into lines no wider than width, at word
// boundaries where possible.
func wrapLine(s string, width int) []string {
	if ansi.StringWidth(s) <= width {
		return []string{s}
	}
	s = wrap.String(wordwrap.String(s, width), width)
	out := strings.Split(s, "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, " ")
	}
	return out
}

// centerLine pads s on both sides to width. An odd remainder goes right.
func centerLine(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func withStyle(l styled.Line, st styled.Style) styled.Line {
	out := make(styled.Line, len(l))
	for i, seg := range l {
		out[i] = styled.Segment{Text: seg.Text, Style: seg.Style.Merge(st)}
	}
	return out
}
