package main

import (
	"os"

	"github.com/spf13/cobra"

	"weatherbot/internal/tui"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the bot interactively",
		RunE:  runChat,
	}
	cmd.Flags().Bool("plain", false, "use the line REPL instead of the full-screen chat")
	return cmd
}

// runChat opens the full-screen chat, or the line REPL with --plain or when
// stdin or stdout is not a terminal.
func runChat(cmd *cobra.Command, _ []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	plain = plain || !isTerminal(os.Stdin) || !isTerminal(os.Stdout)

	a, err := loadApp(!plain)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	svc, err := a.gw.Build(ctx)
	if err != nil {
		return err
	}
	if plain {
		return a.gw.Run(ctx, svc, os.Stdin, os.Stdout)
	}
	return tui.RunChat(ctx, svc)
}
