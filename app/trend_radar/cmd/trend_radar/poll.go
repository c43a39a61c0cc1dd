package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/bot"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/radar"
)

func newPollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run the bot in long-polling mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(config.NeedBotToken, config.NeedLLMKey, config.NeedIGToken, config.NeedIGUser)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			r, cleanup, err := radar.New(ctx, cfg, log, radar.Options{})
			if err != nil {
				return err
			}
			defer cleanup()

			poller := bot.NewPoller(r.Telegram, r.Handler(), cfg.Concurrency.Workers, logrus.NewEntry(log).WithField("component", "poller"))
			return poller.Run(ctx)
		},
	}
}
