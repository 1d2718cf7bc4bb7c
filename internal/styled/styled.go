// Package styled is the text vocabulary shared by slide rendering: a Line is
// a sequence of Segments, each carrying a Style. Lines are turned into
// terminal output through lipgloss.
package styled

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Style is a set of text attributes. Colours are lipgloss colour strings:
// ANSI indices ("1") or hex ("#ff0000"). The zero Style is plain text.
type Style struct {
	Foreground    string
	Background    string
	Bold          bool
	Faint         bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Strikethrough bool
}

func (s Style) IsZero() bool { return s == Style{} }

// Merge returns s with every attribute set in o applied on top. Colours set
// in o replace those in s.
func (s Style) Merge(o Style) Style {
	if o.Foreground != "" {
		s.Foreground = o.Foreground
	}
	if o.Background != "" {
		s.Background = o.Background
	}
	s.Bold = s.Bold || o.Bold
	s.Faint = s.Faint || o.Faint
	s.Italic = s.Italic || o.Italic
	s.Underline = s.Underline || o.Underline
	s.Blink = s.Blink || o.Blink
	s.Reverse = s.Reverse || o.Reverse
	s.Strikethrough = s.Strikethrough || o.Strikethrough
	return s
}

// Lipgloss converts s to a lipgloss style.
func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Foreground != "" {
		ls = ls.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		ls = ls.Background(lipgloss.Color(s.Background))
	}
	return ls.
		Bold(s.Bold).
		Faint(s.Faint).
		Italic(s.Italic).
		Underline(s.Underline).
		Blink(s.Blink).
		Reverse(s.Reverse).
		Strikethrough(s.Strikethrough)
}

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style Style
}

// Line is a single line of styled text. Segments never contain newlines.
type Line []Segment

// Plain returns a line with one unstyled segment.
func Plain(text string) Line {
	if text == "" {
		return Line{}
	}
	return Line{{Text: text}}
}

// String returns the text of the line without styling.
func (l Line) String() string {
	var sb strings.Builder
	for _, seg := range l {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// Width is the display width of the line in terminal cells.
func (l Line) Width() int {
	return ansi.StringWidth(l.String())
}

// Render returns the line with ANSI styling applied.
func (l Line) Render() string {
	var sb strings.Builder
	for _, seg := range l {
		if seg.Style.IsZero() {
			sb.WriteString(seg.Text)
			continue
		}
		sb.WriteString(seg.Style.Lipgloss().Render(seg.Text))
	}
	return sb.String()
}

// Split breaks text on newlines into plain lines.
func Split(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = Plain(strings.TrimSuffix(r, "\r"))
	}
	return lines
}
