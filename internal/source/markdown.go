package source

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"ttydeck/internal/deck"
)

var tocMarker = regexp.MustCompile(`^<!--\s*toc(?:\s*:\s*(.*?))?\s*-->$`)

type frontMatter struct {
	Title string `yaml:"title"`
}

// chunk is the text between two slide separators.
type chunk struct {
	text string
	line int // first line in the file, 1-indexed
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseMarkdown builds a deck from a single Markdown file. Slides are
// separated by "---" lines outside fenced code. A chunk holding only a level
// one heading starts a new section, one holding only a fenced code block is a
// code slide and "<!-- toc -->" is a table of contents; the rest are rendered
// as Markdown.
func ParseMarkdown(file string, data []byte) (*deck.Deck, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	fm, body, offset, err := extractFrontMatter(data)
	if err != nil {
		return nil, &ParseError{File: file, Line: 1, Message: "invalid front matter", Err: fmt.Errorf("%w: %v", deck.ErrMalformedOptions, err)}
	}

	b := deck.NewBuilder()
	if err := b.BeginDeck(fm.Title); err != nil {
		return nil, err
	}

	inSection := false
	for _, c := range splitChunks(string(body), offset) {
		kind, content, opts := classify(c.text)
		if kind == deck.Center {
			if inSection {
				if err := b.EndSection(); err != nil {
					return nil, err
				}
			}
			if err := b.BeginSection(content); err != nil {
				return nil, err
			}
			inSection = true
		}
		if err := b.AddSlide(kind, content, opts); err != nil {
			return nil, &ParseError{File: file, Line: c.line, Message: "slide", Err: err}
		}
	}
	if inSection {
		if err := b.EndSection(); err != nil {
			return nil, err
		}
	}
	return b.EndDeck()
}

// extractFrontMatter splits a leading YAML block delimited by "---" lines off
// data. It also returns how many lines the block occupied.
func extractFrontMatter(data []byte) (frontMatter, []byte, int, error) {
	var fm frontMatter
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return fm, data, 0, nil
	}

	lines := bytes.Split(data, []byte("\n"))
	end := -1
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == -1 {
		// No closing delimiter: the leading rule is a slide separator.
		return fm, data, 0, nil
	}

	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &fm); err != nil {
		return fm, nil, 0, err
	}
	return fm, bytes.Join(lines[end+1:], []byte("\n")), end + 1, nil
}

// splitChunks cuts s on separator lines. Separators inside fenced code do not
// count and blank chunks are dropped.
func splitChunks(s string, offset int) []chunk {
	var (
		chunks []chunk
		cur    []string
		start  = offset + 1
		fence  string
	)
	flush := func(next int) {
		if t := strings.TrimSpace(strings.Join(cur, "\n")); t != "" {
			// Report the first non-blank line.
			lead := 0
			for lead < len(cur) && strings.TrimSpace(cur[lead]) == "" {
				lead++
			}
			chunks = append(chunks, chunk{text: t, line: start + lead})
		}
		cur = cur[:0]
		start = next
	}

	for i, l := range strings.Split(s, "\n") {
		lineNo := offset + i + 1
		trimmed := strings.TrimSpace(l)
		switch {
		case fence != "":
			if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "" {
				fence = ""
			}
		case strings.HasPrefix(trimmed, "```"), strings.HasPrefix(trimmed, "~~~"):
			fence = trimmed[:3]
		case trimmed == "---":
			flush(lineNo + 1)
			continue
		}
		cur = append(cur, l)
	}
	flush(0)
	return chunks
}

// classify decides the slide kind for one chunk.
func classify(s string) (deck.Kind, string, deck.Options) {
	if m := tocMarker.FindStringSubmatch(s); m != nil {
		return deck.TableOfContents, "", deck.Options{Headline: m[1]}
	}

	src := []byte(s)
	doc := md.Parser().Parse(text.NewReader(src))
	if doc.ChildCount() != 1 {
		return deck.Markdown, s, deck.Options{}
	}

	switch n := doc.FirstChild().(type) {
	case *ast.Heading:
		if n.Level == 1 {
			return deck.Center, strings.TrimSpace(string(segments(n, src))), deck.Options{}
		}
	case *ast.FencedCodeBlock:
		opts := deck.Options{}
		if n.Info != nil {
			opts.Language = string(n.Language(src))
		}
		return deck.Code, string(segments(n, src)), opts
	}
	return deck.Markdown, s, deck.Options{}
}

func segments(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.Bytes()
}
