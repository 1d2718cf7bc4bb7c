package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ttydeck/internal/present"
	"ttydeck/internal/termsize"
)

type presentFlags struct {
	toc        bool
	noProgress bool
}

func addPresentFlags(cmd *cobra.Command, f *presentFlags) {
	cmd.Flags().BoolVar(&f.toc, "toc", false, "show the table of contents sidebar (overrides config)")
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, "hide the progress bar (overrides config)")
}

func newPresentCmd(g *globalFlags) *cobra.Command {
	var f presentFlags
	cmd := &cobra.Command{
		Use:   "present <deck>",
		Short: "Present a deck interactively",
		Long: `Take over the terminal and present the deck one slide at a time.

Keys: → l n space next, ← h p previous, <n>g slide n, <n>enter section n,
G last slide, t table of contents, ? help, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresent(cmd, g, f, args[0])
		},
	}
	addPresentFlags(cmd, &f)
	return cmd
}

var errNotTerminal = errors.New("present needs a terminal; use `ttydeck render` to print slides")

func runPresent(cmd *cobra.Command, g *globalFlags, f presentFlags, path string) error {
	s, err := openSession(g, path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if s.deck.TotalSlideCount() == 0 {
		return fmt.Errorf("%s: %w", path, present.ErrEmptyDeck)
	}
	if !termsize.IsTerminal(os.Stdout) {
		return errNotTerminal
	}

	opts := present.DefaultOptions()
	opts.ShowProgress = s.cfg.Layout.ProgressBar && !f.noProgress
	opts.ShowTOC = s.cfg.Layout.TOCSidebar || f.toc
	opts.TOCWidth = s.cfg.Layout.TOCWidth
	opts.Width, opts.Height = termsize.Size(os.Stdout)
	opts.Logger = s.log

	m, err := present.NewModel(s.deck, s.renderer(), opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s.log.Info("presentation started", slog.Int("width", opts.Width), slog.Int("height", opts.Height))
	nav, err := present.Run(cmd.Context(), m)
	if err != nil {
		s.log.Error("presentation failed", slog.Any("error", err))
		return err
	}
	s.log.Info("presentation ended", slog.Int("slide", nav.Current()+1), slog.Int("total", nav.Total()))
	return nil
}
