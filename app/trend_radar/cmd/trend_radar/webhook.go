package main

import (
	"github.com/spf13/cobra"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/telegram"
)

func newSetWebhookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-webhook",
		Short: "Register TELEGRAM_WEBHOOK_URL with the Bot API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(config.NeedBotToken, config.NeedWebhookURL)
			if err != nil {
				return err
			}

			client := telegram.NewClient(cfg.Telegram.BaseURL, cfg.Telegram.BotToken, cfg.Telegram.PollTimeout)
			desc, err := client.SetWebhook(cmd.Context(), cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret)
			if err != nil {
				return err
			}
			log.Infof("Webhook 已注册: %s (%s)", cfg.Telegram.WebhookURL, desc)
			return nil
		},
	}
}
