package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ttydeck/internal/deck"
	"ttydeck/internal/present"
	"ttydeck/internal/source"
)

var (
	// Version is set during build
	Version = "dev"

	// BuildDate is set during build
	BuildDate = "unknown"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitBuildError = 2
	exitEmptyDeck  = 3
)

// globalFlags are shared by every command.
type globalFlags struct {
	config  string
	theme   string
	logFile string
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	var pf presentFlags

	root := &cobra.Command{
		Use:   "ttydeck [deck]",
		Short: "Present slide decks in the terminal",
		Long: `ttydeck presents slide decks in the terminal. A deck is a YAML or TOML
file, a Markdown file with slides separated by --- lines, or a directory
of Markdown files.

Examples:
  ttydeck talk.md
  ttydeck present slides/ --toc
  ttydeck render deck.yaml --slide 3 --width 100`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runPresent(cmd, &g, pf, args[0])
		},
	}

	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	root.PersistentFlags().StringVarP(&g.config, "config", "c", "", "config file (default: ~/.config/ttydeck/config.toml, then ttydeck.toml next to the deck)")
	root.PersistentFlags().StringVar(&g.theme, "theme", "", "chroma style for code slides (overrides config)")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write logs to this file (overrides config)")
	addPresentFlags(root, &pf)

	root.AddCommand(
		newPresentCmd(&g),
		newRenderCmd(&g),
		newInspectCmd(&g),
		newConfigCmd(&g),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	var (
		buildErr *deck.BuildError
		parseErr *source.ParseError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, present.ErrEmptyDeck):
		return exitEmptyDeck
	case errors.As(err, &buildErr), errors.As(err, &parseErr):
		return exitBuildError
	}
	return exitFailure
}
