package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"ttydeck/internal/present"
	"ttydeck/internal/termsize"
)

type renderFlags struct {
	slide  int
	width  int
	height int
	all    bool
	color  bool
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render <deck>",
		Short: "Print rendered slides to stdout",
		Long: `Render slides exactly as they are presented and print them, without raw
mode or the alternate screen. The size defaults to the terminal's, or 80x24.

Example:
  ttydeck render talk.md --slide 2
  ttydeck render deck.yaml --all --width 100 --color | less -R`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, f, args[0])
		},
	}

	cmd.Flags().IntVarP(&f.slide, "slide", "s", 1, "slide number to render (1-based)")
	cmd.Flags().IntVar(&f.width, "width", 0, "frame width (default: terminal width)")
	cmd.Flags().IntVar(&f.height, "height", 0, "frame height (default: terminal height)")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "render every slide")
	cmd.Flags().BoolVar(&f.color, "color", false, "emit ANSI colours even when stdout is not a terminal")
	return cmd
}

func runRender(cmd *cobra.Command, g *globalFlags, f renderFlags, path string) error {
	s, err := openSession(g, path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	total := s.deck.TotalSlideCount()
	if total == 0 {
		return fmt.Errorf("%s: %w", path, present.ErrEmptyDeck)
	}

	width, height := f.width, f.height
	if width <= 0 || height <= 0 {
		tw, th := termsize.Size(os.Stdout)
		if width <= 0 {
			width = tw
		}
		if height <= 0 {
			height = th
		}
	}

	switch {
	case f.color:
		lipgloss.SetColorProfile(termenv.TrueColor)
	case !termsize.IsTerminal(os.Stdout):
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	indices := []int{f.slide - 1}
	if f.all {
		indices = indices[:0]
		for i := range total {
			indices = append(indices, i)
		}
	}

	r := s.renderer()
	out := cmd.OutOrStdout()
	for n, i := range indices {
		slide, err := s.deck.SlideAt(i)
		if err != nil {
			return fmt.Errorf("slide %d of %d: %w", i+1, total, err)
		}
		if n > 0 {
			fmt.Fprintln(out, strings.Repeat("─", width))
		}
		fmt.Fprintln(out, r.Render(slide, width, height).String())
	}
	return nil
}
