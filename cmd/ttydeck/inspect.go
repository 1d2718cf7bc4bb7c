package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"ttydeck/internal/deck"
)

const previewWidth = 40

func newInspectCmd(g *globalFlags) *cobra.Command {
	var slides bool
	cmd := &cobra.Command{
		Use:   "inspect <deck>",
		Short: "Show a deck's title, slide count and table of contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			out := cmd.OutOrStdout()
			title := s.deck.Title()
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(out, "Title:  %s\nSlides: %d\n\n", title, s.deck.TotalSlideCount())
			fmt.Fprintln(out, sectionTable(s.deck))
			if slides {
				fmt.Fprintln(out)
				fmt.Fprintln(out, slideTable(s.deck))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&slides, "slides", false, "also list every slide")
	return cmd
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// sectionTable lists the table of contents with the slide range of each entry.
func sectionTable(d *deck.Deck) string {
	counts := make(map[int]int)
	for i := range d.TotalSlideCount() {
		counts[d.SectionAt(i)]++
	}

	t := newTable("#", "Section", "First", "Slides")
	for i, e := range d.TOCEntries() {
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		first := "-"
		if counts[i] > 0 {
			first = strconv.Itoa(e.FirstIndex + 1)
		}
		t.Row(strconv.Itoa(i+1), strings.Repeat("  ", e.Depth)+title, first, strconv.Itoa(counts[i]))
	}
	return t.Render()
}

func slideTable(d *deck.Deck) string {
	entries := d.TOCEntries()
	t := newTable("#", "Kind", "Section", "Preview")
	for i := range d.TotalSlideCount() {
		s, err := d.SlideAt(i)
		if err != nil {
			continue
		}
		section := ""
		if k := d.SectionAt(i); k >= 0 {
			section = entries[k].Title
		}
		t.Row(strconv.Itoa(i+1), kindLabel(s), section, preview(s))
	}
	return t.Render()
}

func kindLabel(s deck.Slide) string {
	if s.Kind() == deck.Code && s.Language() != "" {
		return fmt.Sprintf("%s (%s)", s.Kind(), s.Language())
	}
	return s.Kind().String()
}

// preview returns the first non-blank body line, or the headline.
func preview(s deck.Slide) string {
	for _, line := range strings.Split(s.Body(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return ansi.Truncate(line, previewWidth, "…")
		}
	}
	h, _ := s.Headline()
	return h
}
