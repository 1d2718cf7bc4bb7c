package main

import (
	"github.com/spf13/cobra"
)

func newConfigCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config [deck]",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration ttydeck would use for a deck, after layering the
global file, the deck's ttydeck.toml, environment variables and flags over
the defaults. The output is a valid config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := loadConfig(g, path)
			if err != nil {
				return err
			}
			return cfg.WriteTOML(cmd.OutOrStdout())
		},
	}
}
