package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

var (
	cfgFile string
	envFile string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trend_radar",
		Short: "Bilingual daily content-strategy reports from social signals",
		Long: `trend_radar 把 Instagram、Pinterest 与 Apify 的信号交给大模型，
生成双语（印尼语 + 英语）内容策略报告，并通过 Telegram 发送。

Examples:
  # 生成一次每日报告并发送给所有会话
  trend_radar report

  # 只打印，不发送
  trend_radar report --dry-run

  # 以长轮询方式运行机器人
  trend_radar poll`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with credentials")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newPollCmd())
	rootCmd.AddCommand(newSetWebhookCmd())
	return rootCmd
}

// setup 加载配置、检查必需项并初始化日志
func setup(reqs ...config.Requirement) (*config.Config, *logrus.Logger, error) {
	path := cfgFile
	if _, err := os.Stat(path); err != nil {
		path = ""
	}
	cfg, err := config.Load(path, envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := cfg.Require(reqs...); err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	return cfg, log, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
