package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/radar"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/storage"
)

func newReportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the daily trend report and send it to every configured chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs := []config.Requirement{config.NeedLLMKey}
			if !dryRun {
				reqs = append(reqs, config.NeedBotToken, config.NeedChatIDs)
			}
			cfg, log, err := setup(reqs...)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			r, cleanup, err := radar.New(ctx, cfg, log, radar.Options{FallbackTrends: true})
			if err != nil {
				return err
			}
			defer cleanup()

			log.Info("开始生成每日报告...")
			text, st, runErr := radar.DailyReport(ctx, r.Engine, cfg.Pipeline.DailyRequest, time.Now(), cfg.Location())

			if r.Store != nil && st != nil {
				run, err := storage.RunFromState(st, strings.Join(cfg.Telegram.ChatIDs, ","), runErr)
				if err == nil {
					err = r.Store.SaveRun(ctx, run)
				}
				if err != nil {
					log.Warnf("归档失败: %v", err)
				}
			}

			if runErr != nil {
				log.Errorf("每日报告生成失败: %v", runErr)
				if !dryRun {
					if err := radar.Broadcast(ctx, r.Telegram, cfg.Telegram.ChatIDs, radar.FailureText(runErr), cfg.Delivery.MaxMessageLen); err != nil {
						log.Errorf("失败通知发送失败: %v", err)
					}
				}
				return runErr
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := radar.Broadcast(ctx, r.Telegram, cfg.Telegram.ChatIDs, text, cfg.Delivery.MaxMessageLen); err != nil {
				return err
			}
			log.Infof("每日报告已发送给 %d 个会话", len(cfg.Telegram.ChatIDs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the report instead of sending it")
	return cmd
}
