package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weatherbot/internal/config"
	"weatherbot/internal/tui"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or update the config file interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New("init needs an interactive terminal")
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			saved, err := tui.RunSetup(*cfg, cfgFile)
			if err != nil {
				return err
			}
			if !saved {
				fmt.Fprintln(cmd.OutOrStdout(), "Setup cancelled, nothing written.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", cfgFile)
			return nil
		},
	}
}
