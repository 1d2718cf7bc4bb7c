package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T) *Deck {
	t.Helper()

	b := NewBuilder()
	require.NoError(t, b.BeginDeck("sample"))
	require.NoError(t, b.BeginSection("A"))
	require.NoError(t, b.AddCenter("a1", ""))
	require.NoError(t, b.AddBlock("a2"))
	require.NoError(t, b.EndSection())
	require.NoError(t, b.BeginSection("B"))
	require.NoError(t, b.AddCode("b1", "go"))
	require.NoError(t, b.EndSection())

	d, err := b.EndDeck()
	require.NoError(t, err)
	return d
}

func TestBuilder_SampleDeck(t *testing.T) {
	d := buildSample(t)

	assert.Equal(t, "sample", d.Title())
	assert.Equal(t, 3, d.TotalSlideCount())
	assert.Equal(t, []TOCEntry{
		{Title: "A", FirstIndex: 0},
		{Title: "B", FirstIndex: 2},
	}, d.TOCEntries())
	assert.Equal(t, []string{"A", "B"}, d.SectionTitles())
}

func TestBuilder_PreservesDeclarationOrder(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.BeginDeck(""))

	var bodies []string
	add := func(body string) {
		bodies = append(bodies, body)
		require.NoError(t, b.AddBlock(body))
	}

	add("top 1")
	require.NoError(t, b.BeginSection("outer"))
	add("outer 1")
	require.NoError(t, b.BeginSection("inner"))
	add("inner 1")
	require.NoError(t, b.BeginSection("innermost"))
	add("innermost 1")
	require.NoError(t, b.EndSection())
	add("inner 2")
	require.NoError(t, b.EndSection())
	add("outer 2")
	require.NoError(t, b.EndSection())
	add("top 2")

	d, err := b.EndDeck()
	require.NoError(t, err)
	require.Equal(t, len(bodies), d.TotalSlideCount())

	for i, want := range bodies {
		s, err := d.SlideAt(i)
		require.NoError(t, err)
		assert.Equal(t, want, s.Body(), "slide %d", i)
	}
}

func TestBuilder_NestedSections(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.BeginDeck(""))
	require.NoError(t, b.BeginSection("outer"))
	require.NoError(t, b.AddBlock("o1"))
	require.NoError(t, b.BeginSection("inner"))
	require.NoError(t, b.AddBlock("i1"))
	require.NoError(t, b.EndSection())
	require.NoError(t, b.AddBlock("o2"))
	require.NoError(t, b.EndSection())

	d, err := b.EndDeck()
	require.NoError(t, err)

	assert.Equal(t, []TOCEntry{
		{Title: "outer", FirstIndex: 0, Depth: 0},
		{Title: "inner", FirstIndex: 1, Depth: 1},
	}, d.TOCEntries())

	sections := d.Sections()
	require.Len(t, sections, 3)
	assert.True(t, sections[2].Continued())
	assert.Equal(t, "outer", sections[2].Title())

	// the continuation maps back to the outer entry
	assert.Equal(t, 0, d.SectionAt(0))
	assert.Equal(t, 1, d.SectionAt(1))
	assert.Equal(t, 0, d.SectionAt(2))
}

func TestBuilder_ImplicitRootSection(t *testing.T) {
	t.Run("root with slides is listed anonymously", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.BeginDeck(""))
		require.NoError(t, b.AddCenter("intro", ""))
		require.NoError(t, b.BeginSection("A"))
		require.NoError(t, b.AddBlock("a"))
		require.NoError(t, b.EndSection())

		d, err := b.EndDeck()
		require.NoError(t, err)
		assert.Equal(t, []TOCEntry{
			{Title: "", FirstIndex: 0},
			{Title: "A", FirstIndex: 1},
		}, d.TOCEntries())
	})

	t.Run("empty root is dropped and later top-level slides take its place", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.BeginDeck(""))
		require.NoError(t, b.BeginSection("A"))
		require.NoError(t, b.AddBlock("a"))
		require.NoError(t, b.EndSection())
		require.NoError(t, b.AddBlock("outro 1"))
		require.NoError(t, b.AddBlock("outro 2"))

		d, err := b.EndDeck()
		require.NoError(t, err)
		assert.Equal(t, []TOCEntry{
			{Title: "A", FirstIndex: 0},
			{Title: "", FirstIndex: 1},
		}, d.TOCEntries())
		assert.Equal(t, 1, d.SectionAt(2))
	})

	t.Run("empty deck has no sections", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.BeginDeck(""))

		d, err := b.EndDeck()
		require.NoError(t, err)
		assert.Zero(t, d.TotalSlideCount())
		assert.Empty(t, d.TOCEntries())
		assert.Empty(t, d.Sections())
	})
}

func TestBuilder_EmptyDeclaredSectionIsKept(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.BeginDeck(""))
	require.NoError(t, b.BeginSection("A"))
	require.NoError(t, b.AddBlock("a"))
	require.NoError(t, b.EndSection())
	require.NoError(t, b.BeginSection("empty"))
	require.NoError(t, b.EndSection())

	d, err := b.EndDeck()
	require.NoError(t, err)
	assert.Equal(t, []TOCEntry{
		{Title: "A", FirstIndex: 0},
		{Title: "empty", FirstIndex: 1},
	}, d.TOCEntries())
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		run     func(b *Builder) error
		wantErr error
		section string
	}{
		{
			name: "unterminated section",
			run: func(b *Builder) error {
				_ = b.BeginDeck("")
				_ = b.BeginSection("open")
				_ = b.AddBlock("x")
				_, err := b.EndDeck()
				return err
			},
			wantErr: ErrUnterminatedSection,
			section: "open",
		},
		{
			name: "end section without begin",
			run: func(b *Builder) error {
				_ = b.BeginDeck("")
				return b.EndSection()
			},
			wantErr: ErrNoOpenSection,
		},
		{
			name: "slide before deck",
			run: func(b *Builder) error {
				return b.AddBlock("x")
			},
			wantErr: ErrDeckNotStarted,
		},
		{
			name: "slide after deck",
			run: func(b *Builder) error {
				_ = b.BeginDeck("")
				_, _ = b.EndDeck()
				return b.AddBlock("x")
			},
			wantErr: ErrDeckFinished,
		},
		{
			name: "language on a center slide",
			run: func(b *Builder) error {
				_ = b.BeginDeck("")
				return b.AddSlide(Center, "x", Options{Language: "go"})
			},
			wantErr: ErrMalformedOptions,
		},
		{
			name: "headline on a block slide",
			run: func(b *Builder) error {
				_ = b.BeginDeck("")
				return b.AddSlide(Block, "x", Options{Headline: "h"})
			},
			wantErr: ErrMalformedOptions,
		},
		{
			name: "body on a table of contents",
			run: func(b *Builder) error {
				_ = b.BeginDeck("")
				return b.AddSlide(TableOfContents, "x", Options{})
			},
			wantErr: ErrMalformedOptions,
		},
		{
			name: "unknown kind",
			run: func(b *Builder) error {
				_ = b.BeginDeck("")
				return b.AddSlide(Kind(42), "x", Options{})
			},
			wantErr: ErrMalformedOptions,
		},
		{
			name: "begin twice",
			run: func(b *Builder) error {
				_ = b.BeginDeck("")
				return b.BeginDeck("")
			},
			wantErr: ErrMalformedOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(NewBuilder())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var be *BuildError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.section, be.Section)
		})
	}
}
