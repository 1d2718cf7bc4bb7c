// Package highlight turns source text into styled lines.
package highlight

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"ttydeck/internal/styled"
)

// ErrUnsupportedLanguage is returned when no lexer exists for a language tag.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Highlighter maps source text and a language tag to styled lines, one per
// line of text.
type Highlighter interface {
	Highlight(text, language string) ([]styled.Line, error)
}

// Chroma highlights with chroma lexers and a chroma style.
type Chroma struct {
	style *chroma.Style

	mu     sync.Mutex
	lexers map[string]chroma.Lexer
}

// NewChroma returns a highlighter using the named chroma style. Unknown
// style names fall back to chroma's default style.
func NewChroma(styleName string) *Chroma {
	return &Chroma{
		style:  styles.Get(styleName),
		lexers: make(map[string]chroma.Lexer),
	}
}

func (c *Chroma) lexer(language string) (chroma.Lexer, error) {
	key := strings.ToLower(strings.TrimSpace(language))
	if key == "" {
		return nil, fmt.Errorf("%w: empty language tag", ErrUnsupportedLanguage)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.lexers[key]; ok {
		return l, nil
	}
	l := lexers.Get(key)
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	l = chroma.Coalesce(l)
	c.lexers[key] = l
	return l, nil
}

// Highlight tokenises text and converts each token to a styled segment.
func (c *Chroma) Highlight(text, language string) ([]styled.Line, error) {
	l, err := c.lexer(language)
	if err != nil {
		return nil, err
	}

	it, err := l.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenizing %s: %w", language, err)
	}

	want := strings.Count(text, "\n") + 1
	lines := make([]styled.Line, 0, want)
	for _, toks := range chroma.SplitTokensIntoLines(it.Tokens()) {
		var line styled.Line
		for _, tok := range toks {
			v := strings.TrimRight(tok.Value, "\r\n")
			if v == "" {
				continue
			}
			line = append(line, styled.Segment{Text: v, Style: c.styleFor(tok.Type)})
		}
		lines = append(lines, line)
	}
	// chroma drops a trailing empty line and some lexers append one; keep
	// the line count of the input.
	for len(lines) < want {
		lines = append(lines, styled.Line{})
	}
	return lines[:want], nil
}

func (c *Chroma) styleFor(tt chroma.TokenType) styled.Style {
	e := c.style.Get(tt)
	var st styled.Style
	if e.Colour.IsSet() {
		st.Foreground = e.Colour.String()
	}
	st.Bold = e.Bold == chroma.Yes
	st.Italic = e.Italic == chroma.Yes
	st.Underline = e.Underline == chroma.Yes
	return st
}
