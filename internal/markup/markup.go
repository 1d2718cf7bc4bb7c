// Package markup resolves inline style tags in slide text.
//
// A tag is a bracketed, comma separated list of style names that applies to
// the text after it until the matching close tag:
//
//	plain [bold,red]loud[/] plain again
//	[green_on_black]status[/]  [on_blue]badge[/]  [[literal bracket
//
// Names are the eight ANSI colours (optionally prefixed bright_ or light_),
// gray, hex colours (#rrggbb), on_<colour> backgrounds, <fg>_on_<bg> pairs
// and the attributes bold, faint, dim, italic, underline, blink, reverse,
// strike and strikethrough. Tags nest; when nested tags set the same colour
// the innermost wins. Unclosed tags end with the line. A tag with an unknown
// name is left in the text verbatim. Raw ANSI escape sequences pass through
// untouched.
package markup

import (
	"strings"

	"ttydeck/internal/styled"
)

var colors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
}

var brightColors = map[string]string{
	"black":   "8",
	"red":     "9",
	"green":   "10",
	"yellow":  "11",
	"blue":    "12",
	"magenta": "13",
	"cyan":    "14",
	"white":   "15",
}

// Parse resolves the tags in a single line. It returns the styled line and
// the names of any tags it did not recognise, in order of appearance.
func Parse(line string) (styled.Line, []string) {
	p := parser{stack: []styled.Style{{}}}
	p.run(line)
	return p.out, p.unknown
}

// Lines parses every line of text.
func Lines(text string) ([]styled.Line, []string) {
	var (
		out     []styled.Line
		unknown []string
	)
	for _, raw := range strings.Split(text, "\n") {
		l, u := Parse(strings.TrimSuffix(raw, "\r"))
		out = append(out, l)
		unknown = append(unknown, u...)
	}
	return out, unknown
}

// Strip returns line with every recognised tag removed.
func Strip(line string) string {
	l, _ := Parse(line)
	return l.String()
}

type parser struct {
	stack   []styled.Style
	buf     strings.Builder
	out     styled.Line
	unknown []string
}

func (p *parser) top() styled.Style { return p.stack[len(p.stack)-1] }

// flush emits the buffered text with the current style.
func (p *parser) flush() {
	if p.buf.Len() == 0 {
		return
	}
	text := p.buf.String()
	p.buf.Reset()
	st := p.top()
	if n := len(p.out); n > 0 && p.out[n-1].Style == st {
		p.out[n-1].Text += text
		return
	}
	p.out = append(p.out, styled.Segment{Text: text, Style: st})
}

func (p *parser) run(line string) {
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case c == 0x1b:
			n := escapeLen(line[i:])
			p.buf.WriteString(line[i : i+n])
			i += n
		case c == '[' && strings.HasPrefix(line[i:], "[["):
			p.buf.WriteByte('[')
			i += 2
		case c == '[':
			end := strings.IndexAny(line[i+1:], "[]")
			if end < 0 || line[i+1+end] != ']' {
				p.buf.WriteByte('[')
				i++
				continue
			}
			tag := line[i+1 : i+1+end]
			if p.apply(tag) {
				i += end + 2
				continue
			}
			p.unknown = append(p.unknown, tag)
			p.buf.WriteString(line[i : i+end+2])
			i += end + 2
		default:
			p.buf.WriteByte(c)
			i++
		}
	}
	p.flush()
}

// apply handles an open or close tag and reports whether it was recognised.
func (p *parser) apply(tag string) bool {
	if strings.HasPrefix(tag, "/") {
		if len(p.stack) == 1 {
			return false
		}
		p.flush()
		p.stack = p.stack[:len(p.stack)-1]
		return true
	}

	st, ok := Lookup(tag)
	if !ok {
		return false
	}
	p.flush()
	p.stack = append(p.stack, p.top().Merge(st))
	return true
}

// Lookup resolves a comma separated list of style names. Later names win
// over earlier ones for colours.
func Lookup(tag string) (styled.Style, bool) {
	var st styled.Style
	for _, name := range strings.Split(tag, ",") {
		one, ok := lookupName(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return styled.Style{}, false
		}
		st = st.Merge(one)
	}
	return st, true
}

func lookupName(name string) (styled.Style, bool) {
	switch name {
	case "bold":
		return styled.Style{Bold: true}, true
	case "faint", "dim":
		return styled.Style{Faint: true}, true
	case "italic":
		return styled.Style{Italic: true}, true
	case "underline":
		return styled.Style{Underline: true}, true
	case "blink":
		return styled.Style{Blink: true}, true
	case "reverse":
		return styled.Style{Reverse: true}, true
	case "strike", "strikethrough":
		return styled.Style{Strikethrough: true}, true
	}

	if bg, ok := strings.CutPrefix(name, "on_"); ok {
		c, ok := color(bg)
		return styled.Style{Background: c}, ok
	}
	if fg, bg, ok := strings.Cut(name, "_on_"); ok {
		f, okf := color(fg)
		b, okb := color(bg)
		return styled.Style{Foreground: f, Background: b}, okf && okb
	}
	c, ok := color(name)
	return styled.Style{Foreground: c}, ok
}

func color(name string) (string, bool) {
	if isHex(name) {
		return name, true
	}
	for _, prefix := range []string{"bright_", "light_"} {
		if base, ok := strings.CutPrefix(name, prefix); ok {
			c, ok := brightColors[base]
			return c, ok
		}
	}
	c, ok := colors[name]
	return c, ok
}

func isHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

// escapeLen returns the length of the escape sequence at the start of s.
// Only CSI sequences are recognised; a lone ESC has length 1.
func escapeLen(s string) int {
	if len(s) < 2 || s[1] != '[' {
		return 1
	}
	for i := 2; i < len(s); i++ {
		if s[i] >= 0x40 && s[i] <= 0x7e {
			return i + 1
		}
	}
	return len(s)
}
