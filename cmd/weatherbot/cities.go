package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weatherbot/internal/gazetteer"
)

func newCitiesCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "cities [query]",
		Short: "List or fuzzy-search the cities the bot recognises",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			a, err := loadApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			cities, err := a.gw.Cities()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "%d cities, most populous first:\n", len(cities))
				fmt.Fprintln(out, strings.Join(cities[:min(limit, len(cities))], "\n"))
				return nil
			}
			names := gazetteer.Suggest(cities, args[0], limit)
			if len(names) == 0 {
				return fmt.Errorf("no city matches %q", args[0])
			}
			fmt.Fprintln(out, strings.Join(names, "\n"))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of names to print")
	return cmd
}
