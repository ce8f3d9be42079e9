package main

import (
	"github.com/spf13/cobra"

	"weatherbot/internal/telegram"
)

func newTelegramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Run the bot on Telegram (needs telegram_token)",
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
			bot, err := telegram.NewBot(a.cfg.TelegramToken, svc, a.log, false)
			if err != nil {
				return err
			}
			return bot.Start(ctx)
		},
	}
}
