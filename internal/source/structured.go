package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ttydeck/internal/deck"
)

// rawDeck is the schema shared by YAML and TOML decks.
type rawDeck struct {
	Title  string    `yaml:"title" toml:"title"`
	Slides []rawItem `yaml:"slides" toml:"slides"`
}

// rawItem is one entry of a slides list: exactly one slide kind, or a section
// with its own slides.
type rawItem struct {
	Center          *string `yaml:"center" toml:"center"`
	Code            *string `yaml:"code" toml:"code"`
	Block           *string `yaml:"block" toml:"block"`
	Markdown        *string `yaml:"markdown" toml:"markdown"`
	TableOfContents *bool   `yaml:"tableofcontents" toml:"tableofcontents"`

	Section *string   `yaml:"section" toml:"section"`
	Slides  []rawItem `yaml:"slides" toml:"slides"`

	Headline *string `yaml:"headline" toml:"headline"`
	Language *string `yaml:"language" toml:"language"`

	line int
}

// ParseYAML builds a deck from a YAML document. Keys outside the schema are
// rejected.
func ParseYAML(file string, data []byte) (*deck.Deck, error) {
	var raw rawDeck
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return build(file, raw)
		}
		return nil, &ParseError{File: file, Message: "invalid YAML", Err: fmt.Errorf("%w: %v", deck.ErrMalformedOptions, err)}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err == nil {
		annotate(raw.Slides, slidesNode(&doc))
	}
	return build(file, raw)
}

// ParseTOML builds a deck from a TOML document using arrays of tables:
//
//	title = "Demo"
//	[[slides]]
//	center = "Hello"
//	[[slides]]
//	section = "Intro"
//	  [[slides.slides]]
//	  block = "..."
func ParseTOML(file string, data []byte) (*deck.Deck, error) {
	var raw rawDeck
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		line := 0
		var perr toml.ParseError
		if errors.As(err, &perr) {
			line = perr.Position.Line
		}
		return nil, &ParseError{File: file, Line: line, Message: "invalid TOML", Err: fmt.Errorf("%w: %v", deck.ErrMalformedOptions, err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &ParseError{File: file, Message: fmt.Sprintf("unknown key %q", undecoded[0].String())}
	}
	return build(file, raw)
}

// slidesNode finds the sequence under the top-level "slides" key.
func slidesNode(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	return mappingValue(doc.Content[0], "slides")
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// annotate copies source line numbers from the YAML tree onto items.
func annotate(items []rawItem, seq *yaml.Node) {
	if seq == nil || seq.Kind != yaml.SequenceNode || len(seq.Content) != len(items) {
		return
	}
	for i := range items {
		n := seq.Content[i]
		items[i].line = n.Line
		annotate(items[i].Slides, mappingValue(n, "slides"))
	}
}

func build(file string, raw rawDeck) (*deck.Deck, error) {
	b := deck.NewBuilder()
	if err := b.BeginDeck(raw.Title); err != nil {
		return nil, err
	}
	if err := addItems(b, file, "slides", raw.Slides); err != nil {
		return nil, err
	}
	d, err := b.EndDeck()
	if err != nil {
		return nil, &ParseError{File: file, Message: "incomplete deck", Err: err}
	}
	return d, nil
}

func addItems(b *deck.Builder, file, path string, items []rawItem) error {
	for i, it := range items {
		if err := addItem(b, file, fmt.Sprintf("%s[%d]", path, i), it); err != nil {
			return err
		}
	}
	return nil
}

func addItem(b *deck.Builder, file, path string, it rawItem) error {
	fail := func(format string, args ...any) error {
		return &ParseError{File: file, Line: it.line, Message: path + ": " + fmt.Sprintf(format, args...)}
	}

	set := 0
	for _, present := range []bool{
		it.Center != nil, it.Code != nil, it.Block != nil, it.Markdown != nil,
		it.TableOfContents != nil && *it.TableOfContents, it.Section != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fail("item needs exactly one of center, code, block, markdown, tableofcontents or section")
	}

	if it.Section != nil {
		if it.Headline != nil || it.Language != nil {
			return fail("sections take no headline or language")
		}
		if err := b.BeginSection(*it.Section); err != nil {
			return err
		}
		if err := addItems(b, file, path+".slides", it.Slides); err != nil {
			return err
		}
		return b.EndSection()
	}
	if it.Slides != nil {
		return fail("slides is only valid on a section item")
	}

	var (
		kind deck.Kind
		body string
	)
	switch {
	case it.Center != nil:
		kind, body = deck.Center, *it.Center
	case it.Code != nil:
		kind, body = deck.Code, *it.Code
	case it.Block != nil:
		kind, body = deck.Block, *it.Block
	case it.Markdown != nil:
		kind, body = deck.Markdown, *it.Markdown
	default:
		kind = deck.TableOfContents
	}

	var opts deck.Options
	if it.Headline != nil {
		opts.Headline = strings.TrimSpace(*it.Headline)
	}
	if it.Language != nil {
		opts.Language = strings.TrimSpace(*it.Language)
	}
	if err := b.AddSlide(kind, body, opts); err != nil {
		return &ParseError{File: file, Line: it.line, Message: path, Err: err}
	}
	return nil
}
