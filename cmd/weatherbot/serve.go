package main

import (
	"github.com/spf13/cobra"

	"weatherbot/internal/webui"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web chat and its JSON/websocket API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(false)
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
			cities, err := a.gw.Cities()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			srv, err := webui.NewServer(svc, webui.Options{
				Addr:           addr,
				AllowedOrigins: a.cfg.CORSOrigins,
				Cities:         cities,
				Logger:         a.log,
			})
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default listen_addr from config)")
	return cmd
}
