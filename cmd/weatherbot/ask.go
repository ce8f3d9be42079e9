package main

import (
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"weatherbot/internal/gateway"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ask <message...>",
		Short:   "Answer a single message and exit",
		Example: `  weatherbot ask "will it rain in Lyon tomorrow?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			stop := func() {}
			if isTerminal(os.Stderr) {
				s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
				s.Suffix = " checking the sky..."
				s.Start()
				stop = s.Stop
			}

			svc, err := a.gw.Build(ctx)
			if err != nil {
				stop()
				return err
			}
			reply, intent := svc.Chat(ctx, strings.Join(args, " "))
			stop()
			gateway.Print(os.Stdout, reply, intent)
			return nil
		},
	}
}
