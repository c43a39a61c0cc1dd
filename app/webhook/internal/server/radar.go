package server

import (
	"context"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/bot"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	trLogger "github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/radar"
	"github.com/iWorld-y/trend_radar/app/webhook/internal/conf"
)

// BotConfig 将 internal/conf.Bot 转换为 pkg/config.Config，并叠加环境变量与默认值
func BotConfig(c *conf.Bot) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		c = &conf.Bot{}
	}

	if l := c.Llm; l != nil {
		cfg.LLM = config.LLMConfig{
			Provider:      l.Provider,
			BaseURL:       l.BaseUrl,
			APIKey:        l.ApiKey,
			Model:         l.Model,
			FallbackModel: l.FallbackModel,
			Temperature:   l.Temperature,
			MaxTokens:     int(l.MaxTokens),
			Timeout:       int(l.Timeout),
		}
	}
	if ig := c.Instagram; ig != nil {
		cfg.Instagram = config.InstagramConfig{
			AccessToken:  ig.AccessToken,
			UserID:       ig.UserId,
			GraphVersion: ig.GraphVersion,
		}
	}
	if p := c.Pinterest; p != nil {
		cfg.Pinterest = config.PinterestConfig{
			AccessToken: p.AccessToken,
			Region:      p.Region,
		}
	}
	if a := c.Apify; a != nil {
		cfg.Apify = config.ApifyConfig{
			Token:     a.Token,
			DatasetID: a.DatasetId,
		}
	}
	if t := c.Telegram; t != nil {
		cfg.Telegram = config.TelegramConfig{
			BotToken:      t.BotToken,
			ChatIDs:       t.ChatIds,
			WebhookSecret: t.WebhookSecret,
		}
		cfg.Delivery.MaxMessageLen = int(t.MaxMessageLen)
	}
	if s := c.Signals; s != nil {
		cfg.Signals = config.SignalsConfig{
			TrackedHashtags: s.TrackedHashtags,
			HashtagLimit:    int(s.HashtagLimit),
			Competitors:     s.Competitors,
		}
		if d, err := time.ParseDuration(s.HashtagInterval); err == nil {
			cfg.Signals.HashtagInterval = d
		}
	}
	if p := c.Pipeline; p != nil {
		cfg.Pipeline = config.PipelineConfig{
			StrictValidation: p.StrictValidation,
			Timezone:         p.Timezone,
		}
	}
	if l := c.Log; l != nil {
		cfg.Log = config.LogConfig{Level: l.Level, File: l.File}
	}
	if cc := c.Concurrency; cc != nil {
		cfg.Concurrency = config.ConcurrencyConfig{QPS: int(cc.Qps), RPM: int(cc.Rpm)}
	}
	if db := c.Db; db != nil {
		cfg.DB = config.DBConfig{
			Host:     db.Host,
			Port:     int(db.Port),
			User:     db.User,
			Password: db.Password,
			Name:     db.Name,
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	cfg.ApplyDefaults()
	return cfg
}

// NewRadar 初始化 trend_radar 流水线
func NewRadar(cfg *config.Config, logger log.Logger) (*radar.Radar, func(), error) {
	helper := log.NewHelper(logger)
	if err := cfg.Require(config.NeedBotToken, config.NeedLLMKey); err != nil {
		return nil, nil, err
	}

	// 初始化日志
	trLog, err := trLogger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		helper.Errorf("Failed to init trend_radar logger: %v", err)
		if trLog, err = trLogger.New("info", ""); err != nil { // 降级处理
			return nil, nil, err
		}
	}

	r, cleanup, err := radar.New(context.Background(), cfg, trLog, radar.Options{})
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}
	return r, func() {
		helper.Info("Cleaning up trend_radar engine")
		cleanup()
	}, nil
}

// NewDispatcher 为 webhook 创建异步分发器。cleanup 取消进行中的流水线并等待其退出。
func NewDispatcher(r *radar.Radar) (*bot.Dispatcher, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	d := bot.NewDispatcher(ctx, r.Handler())
	return d, func() {
		cancel()
		d.Wait()
	}
}
