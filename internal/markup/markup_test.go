package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ttydeck/internal/styled"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    styled.Line
		unknown []string
	}{
		{
			name: "plain text",
			in:   "not just normal text",
			want: styled.Line{{Text: "not just normal text"}},
		},
		{
			name: "single colour",
			in:   "[green]dirty color hack[/]",
			want: styled.Line{{Text: "dirty color hack", Style: styled.Style{Foreground: "2"}}},
		},
		{
			name: "foreground on background",
			in:   "[green_on_black]see doku[/] more",
			want: styled.Line{
				{Text: "see doku", Style: styled.Style{Foreground: "2", Background: "0"}},
				{Text: " more"},
			},
		},
		{
			name: "attribute list",
			in:   "[bold, underline]x[/]",
			want: styled.Line{{Text: "x", Style: styled.Style{Bold: true, Underline: true}}},
		},
		{
			name: "nested tags innermost colour wins",
			in:   "[red,bold]a[green]b[/]c[/]",
			want: styled.Line{
				{Text: "a", Style: styled.Style{Foreground: "1", Bold: true}},
				{Text: "b", Style: styled.Style{Foreground: "2", Bold: true}},
				{Text: "c", Style: styled.Style{Foreground: "1", Bold: true}},
			},
		},
		{
			name: "later name in one tag wins",
			in:   "[red,blue]x",
			want: styled.Line{{Text: "x", Style: styled.Style{Foreground: "4"}}},
		},
		{
			name: "bright and hex colours",
			in:   "[bright_red]a[/][on_#00ff00]b",
			want: styled.Line{
				{Text: "a", Style: styled.Style{Foreground: "9"}},
				{Text: "b", Style: styled.Style{Background: "#00ff00"}},
			},
		},
		{
			name:    "unknown tag stays verbatim",
			in:      "arr[0] and [sparkle]x[/]",
			want:    styled.Line{{Text: "arr[0] and [sparkle]x[/]"}},
			unknown: []string{"0", "sparkle", "/"},
		},
		{
			name: "escaped bracket",
			in:   "[[bold] is literal",
			want: styled.Line{{Text: "[bold] is literal"}},
		},
		{
			name: "unterminated bracket",
			in:   "a [b",
			want: styled.Line{{Text: "a [b"}},
		},
		{
			name: "raw escape sequences pass through",
			in:   "\x1b[1mConstant Autoloading\x1b[0m",
			want: styled.Line{{Text: "\x1b[1mConstant Autoloading\x1b[0m"}},
		},
		{
			name: "empty line",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unknown := Parse(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.unknown, unknown)
		})
	}
}

func TestLines(t *testing.T) {
	lines, unknown := Lines("[red]a[/]\n\n[nope]b")

	assert.Len(t, lines, 3)
	assert.Equal(t, "a", lines[0].String())
	assert.Empty(t, lines[1])
	assert.Equal(t, "[nope]b", lines[2].String())
	assert.Equal(t, []string{"nope"}, unknown)
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "colors! and bold", Strip("[red]colors![/] and [bold]bold[/]"))
}

func TestLookup(t *testing.T) {
	st, ok := Lookup("yellow_on_blue")
	assert.True(t, ok)
	assert.Equal(t, styled.Style{Foreground: "3", Background: "4"}, st)

	_, ok = Lookup("yellow_on_nothing")
	assert.False(t, ok)
	_, ok = Lookup("")
	assert.False(t, ok)
}
