package main

import (
	"github.com/spf13/cobra"

	"weatherbot/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the chat as MCP tools over stdio",
		Long: `Runs a Model Context Protocol server on stdin/stdout exposing two tools:
"chat", which answers one message, and "find_city", which searches the
recognised city names. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.gw.Build(cmd.Context())
			if err != nil {
				return err
			}
			cities, err := a.gw.Cities()
			if err != nil {
				return err
			}
			return mcpserver.NewServer(svc, cities).Serve()
		},
	}
}
