package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttydeck/internal/deck"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func kinds(t *testing.T, d *deck.Deck) []deck.Kind {
	t.Helper()
	var out []deck.Kind
	for i := range d.TotalSlideCount() {
		s, err := d.SlideAt(i)
		require.NoError(t, err)
		out = append(out, s.Kind())
	}
	return out
}

const yamlDeck = `title: Demo
slides:
  - center: Welcome
    headline: a tour
  - section: Basics
    slides:
      - block: |
          [bold]one[/]
          two
      - code: |
          puts "hi"
        language: ruby
  - tableofcontents: true
    headline: Agenda
  - section: Extras
    slides:
      - markdown: "# Done"
`

func TestParseYAML(t *testing.T) {
	d, err := ParseYAML("deck.yaml", []byte(yamlDeck))
	require.NoError(t, err)

	assert.Equal(t, "Demo", d.Title())
	assert.Equal(t, []deck.Kind{deck.Center, deck.Block, deck.Code, deck.TableOfContents, deck.Markdown}, kinds(t, d))
	assert.Equal(t, []deck.TOCEntry{
		{Title: "", FirstIndex: 0},
		{Title: "Basics", FirstIndex: 1},
		{Title: "Extras", FirstIndex: 4},
	}, d.TOCEntries())

	s, err := d.SlideAt(0)
	require.NoError(t, err)
	h, ok := s.Headline()
	assert.True(t, ok)
	assert.Equal(t, "a tour", h)

	s, err = d.SlideAt(2)
	require.NoError(t, err)
	assert.Equal(t, "ruby", s.Language())
	assert.Equal(t, "puts \"hi\"\n", s.Body())
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		line int
		msg  string
	}{
		{
			name: "two kinds",
			doc:  "slides:\n  - center: a\n    block: b\n",
			line: 2,
			msg:  "exactly one",
		},
		{
			name: "no kind",
			doc:  "slides:\n  - headline: x\n",
			line: 2,
			msg:  "exactly one",
		},
		{
			name: "language on block",
			doc:  "slides:\n  - center: a\n  - block: b\n    language: go\n",
			line: 3,
			msg:  "slides[1]",
		},
		{
			name: "unknown key",
			doc:  "slides:\n  - centre: a\n",
			msg:  "invalid YAML",
		},
		{
			name: "slides on a slide",
			doc:  "slides:\n  - block: a\n    slides: []\n",
			line: 2,
			msg:  "only valid on a section",
		},
		{
			name: "headline on section",
			doc:  "slides:\n  - section: s\n    headline: h\n",
			line: 2,
			msg:  "no headline",
		},
		{
			name: "nested path",
			doc:  "slides:\n  - section: s\n    slides:\n      - code: x\n        headline: h\n",
			line: 4,
			msg:  "slides[0].slides[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML("deck.yaml", []byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, deck.ErrMalformedOptions)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "deck.yaml", perr.File)
			assert.Equal(t, tt.line, perr.Line)
			assert.Contains(t, perr.Error(), tt.msg)
		})
	}
}

func TestParseYAML_Empty(t *testing.T) {
	d, err := ParseYAML("deck.yaml", nil)
	require.NoError(t, err)
	assert.Zero(t, d.TotalSlideCount())
}

const tomlDeck = `title = "Demo"

[[slides]]
center = "Hello"

[[slides]]
section = "Code"

  [[slides.slides]]
  code = "fmt.Println(1)"
  language = "go"

  [[slides.slides]]
  section = "Deeper"

    [[slides.slides.slides]]
    block = "inner"

  [[slides.slides]]
  block = "after"

[[slides]]
tableofcontents = true
`

func TestParseTOML(t *testing.T) {
	d, err := ParseTOML("deck.toml", []byte(tomlDeck))
	require.NoError(t, err)

	assert.Equal(t, "Demo", d.Title())
	assert.Equal(t, []deck.Kind{deck.Center, deck.Code, deck.Block, deck.Block, deck.TableOfContents}, kinds(t, d))
	assert.Equal(t, []deck.TOCEntry{
		{Title: "", FirstIndex: 0},
		{Title: "Code", FirstIndex: 1},
		{Title: "Deeper", FirstIndex: 2, Depth: 1},
	}, d.TOCEntries())
	assert.Equal(t, 1, d.SectionAt(3), "continuation of Code")
	assert.Equal(t, 0, d.SectionAt(4), "continuation of the root")
}

func TestParseTOML_Errors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, err := ParseTOML("deck.toml", []byte("[[slides]]\ncentre = \"x\"\n"))
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, "slides.centre")
		assert.ErrorIs(t, err, deck.ErrMalformedOptions)
	})

	t.Run("syntax", func(t *testing.T) {
		_, err := ParseTOML("deck.toml", []byte("title = \"x\"\n[[slides]\n"))
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "invalid TOML", perr.Message)
		assert.ErrorIs(t, err, deck.ErrMalformedOptions)
	})

	t.Run("toc with body", func(t *testing.T) {
		_, err := ParseTOML("deck.toml", []byte("[[slides]]\ntableofcontents = true\nblock = \"x\"\n"))
		assert.ErrorIs(t, err, deck.ErrMalformedOptions)
	})
}

const markdownDeck = "---\ntitle: Talk\n---\n" +
	"# Intro\n" +
	"---\n" +
	"Some *text*\n\n- a\n- b\n" +
	"---\n" +
	"```go\nfunc main() {}\n\n// ---\n```\n" +
	"---\n" +
	"<!-- toc: Agenda -->\n" +
	"---\n" +
	"# Outro\n" +
	"---\n" +
	"```\n---\n```\n"

func TestParseMarkdown(t *testing.T) {
	d, err := ParseMarkdown("talk.md", []byte(markdownDeck))
	require.NoError(t, err)

	assert.Equal(t, "Talk", d.Title())
	assert.Equal(t, []deck.Kind{deck.Center, deck.Markdown, deck.Code, deck.TableOfContents, deck.Center, deck.Code}, kinds(t, d))
	assert.Equal(t, []deck.TOCEntry{
		{Title: "Intro", FirstIndex: 0},
		{Title: "Outro", FirstIndex: 4},
	}, d.TOCEntries())

	s, err := d.SlideAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Intro", s.Body())

	s, err = d.SlideAt(2)
	require.NoError(t, err)
	assert.Equal(t, "go", s.Language())
	assert.Equal(t, "func main() {}\n\n// ---\n", s.Body())

	s, err = d.SlideAt(3)
	require.NoError(t, err)
	h, _ := s.Headline()
	assert.Equal(t, "Agenda", h)

	s, err = d.SlideAt(5)
	require.NoError(t, err)
	assert.Equal(t, "---\n", s.Body(), "separator inside a fence")
	assert.Empty(t, s.Language())
}

func TestParseMarkdown_NoFrontMatter(t *testing.T) {
	d, err := ParseMarkdown("talk.md", []byte("one\n\n---\n\n\n---\ntwo\r\n"))
	require.NoError(t, err)

	assert.Empty(t, d.Title())
	assert.Equal(t, 2, d.TotalSlideCount(), "blank chunks dropped")
	assert.Equal(t, []deck.TOCEntry{{Title: "", FirstIndex: 0}}, d.TOCEntries())
}

func TestParseMarkdown_BadFrontMatter(t *testing.T) {
	_, err := ParseMarkdown("talk.md", []byte("---\ntitle: [\n---\nbody\n"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.ErrorIs(t, err, deck.ErrMalformedOptions)
}

func TestSplitChunks_Lines(t *testing.T) {
	chunks := splitChunks("a\n---\n\nb\n---\n~~~\n---\n~~~", 3)
	require.Len(t, chunks, 3)
	assert.Equal(t, chunk{text: "a", line: 4}, chunks[0])
	assert.Equal(t, chunk{text: "b", line: 7}, chunks[1])
	assert.Equal(t, chunk{text: "~~~\n---\n~~~", line: 9}, chunks[2])
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "_title.md"), "  My Deck \n")
	writeFile(t, filepath.Join(dir, "01-intro.md"), "# Hello")
	writeFile(t, filepath.Join(dir, "02-part", "_title.md"), "Part Two")
	writeFile(t, filepath.Join(dir, "02-part", "a.md"), "a")
	writeFile(t, filepath.Join(dir, "02-part", "b.md"), "b")
	writeFile(t, filepath.Join(dir, "03-extra", "x.md"), "x")
	writeFile(t, filepath.Join(dir, "04-end.md"), "end")
	writeFile(t, filepath.Join(dir, "_draft.md"), "skipped")
	writeFile(t, filepath.Join(dir, "notes.txt"), "skipped")

	d, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "My Deck", d.Title())
	assert.Equal(t, 5, d.TotalSlideCount())
	assert.Equal(t, []deck.TOCEntry{
		{Title: "", FirstIndex: 0},
		{Title: "Part Two", FirstIndex: 1},
		{Title: "03-extra", FirstIndex: 3},
	}, d.TOCEntries())

	var bodies []string
	for i := range d.TotalSlideCount() {
		s, err := d.SlideAt(i)
		require.NoError(t, err)
		assert.Equal(t, deck.Markdown, s.Kind())
		bodies = append(bodies, s.Body())
	}
	assert.Equal(t, []string{"# Hello", "a", "b", "x", "end"}, bodies)
}

func TestLoadDir_Empty(t *testing.T) {
	d, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, d.TotalSlideCount())
}

func TestLoad_Dispatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "deck.yml"), "slides:\n  - block: y\n")
	writeFile(t, filepath.Join(dir, "deck.toml"), "[[slides]]\nblock = \"t\"\n")
	writeFile(t, filepath.Join(dir, "deck.markdown"), "m")
	writeFile(t, filepath.Join(dir, "deck.txt"), "x")
	writeFile(t, filepath.Join(dir, "slides", "one.md"), "d")

	for name, body := range map[string]string{
		"deck.yml":      "y",
		"deck.toml":     "t",
		"deck.markdown": "m",
		"slides":        "d",
	} {
		t.Run(name, func(t *testing.T) {
			d, err := Load(filepath.Join(dir, name))
			require.NoError(t, err)
			s, err := d.SlideAt(0)
			require.NoError(t, err)
			assert.Equal(t, body, s.Body())
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "deck.txt"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
