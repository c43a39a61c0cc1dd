// Package radar 根据配置组装流水线及其依赖，命令行和 webhook 服务共用。
package radar

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/apify"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/bot"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/delivery"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/instagram"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/llm"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/pinterest"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/render"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/router"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/signals"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/storage"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/telegram"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/validator"
)

// Options 组装选项
type Options struct {
	// FallbackTrends Pinterest 未配置或失败时使用内置趋势列表（每日报告）
	FallbackTrends bool
}

// Radar 组装好的流水线与收发端
type Radar struct {
	Config   *config.Config
	Log      *logrus.Logger
	Engine   *engine.Engine
	Telegram *telegram.Client
	Store    *storage.Storage
}

// New 创建全部依赖。数据库连接失败不影响运行，只是不再归档。
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger, opts Options) (*Radar, func(), error) {
	completer, err := llm.NewCompleter(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	entry := logrus.NewEntry(log)
	gen := router.New(completer, cfg.LLM.Model, cfg.LLM.FallbackModel, entry.WithField("component", "router"))

	collector := signals.NewCollector(instagramSource(cfg), trendSource(cfg), datasetSource(cfg), signals.Options{
		UserID:          cfg.Instagram.UserID,
		Hashtags:        cfg.Signals.TrackedHashtags,
		HashtagLimit:    cfg.Signals.HashtagLimit,
		HashtagInterval: cfg.Signals.HashtagInterval,
		MediaSample:     cfg.Signals.MediaSample,
		Competitors:     cfg.Signals.Competitors,
		Region:          cfg.Pinterest.Region,
		DatasetID:       cfg.Apify.DatasetID,
		DatasetLimit:    cfg.Apify.Limit,
		FallbackTrends:  opts.FallbackTrends,
	}, entry.WithField("component", "signals"))

	v := validator.New(validator.WithStrict(cfg.Pipeline.StrictValidation))

	r := &Radar{
		Config:   cfg,
		Log:      log,
		Engine:   engine.NewEngine(gen, collector, v, entry.WithField("component", "engine")),
		Telegram: telegram.NewClient(cfg.Telegram.BaseURL, cfg.Telegram.BotToken, cfg.Telegram.PollTimeout),
	}

	if cfg.DB.Enabled() {
		store, err := storage.NewStorage(ctx, cfg.DB)
		if err != nil {
			log.Errorf("无法连接数据库: %v. 将不归档运行结果。", err)
		} else {
			r.Store = store
			log.Info("已成功连接到数据库")
		}
	} else {
		log.Info("未配置数据库信息，跳过数据库连接")
	}

	cleanup := func() {
		if r.Store != nil {
			if err := r.Store.Close(); err != nil {
				log.Warnf("关闭数据库失败: %v", err)
			}
		}
	}
	return r, cleanup, nil
}

// 未配置的数据源返回 nil 接口，采集器会写入 "not configured" 说明
func instagramSource(cfg *config.Config) signals.InstagramAPI {
	if cfg.Instagram.AccessToken == "" {
		return nil
	}
	return instagram.NewClient(cfg.Instagram.BaseURL, cfg.Instagram.GraphVersion, cfg.Instagram.AccessToken)
}

func trendSource(cfg *config.Config) signals.TrendAPI {
	if cfg.Pinterest.AccessToken == "" {
		return nil
	}
	return pinterest.NewClient(cfg.Pinterest.BaseURL, cfg.Pinterest.AccessToken, cfg.Pinterest.Interests, cfg.Pinterest.Limit)
}

func datasetSource(cfg *config.Config) signals.DatasetAPI {
	if cfg.Apify.Token == "" {
		return nil
	}
	return apify.NewClient(cfg.Apify.BaseURL, cfg.Apify.Token)
}

// Handler 消息处理器，配置了数据库时同时归档
func (r *Radar) Handler() *bot.Handler {
	opts := []bot.Option{bot.WithMaxLen(r.Config.Delivery.MaxMessageLen)}
	if r.Store != nil {
		opts = append(opts, bot.WithArchiver(r.Store))
	}
	return bot.NewHandler(r.Engine, r.Telegram, r.Config.Telegram.ChatIDs, logrus.NewEntry(r.Log).WithField("component", "bot"), opts...)
}

// FailureText 每日报告失败时发送的文本
func FailureText(err error) string {
	return fmt.Sprintf("Trend analysis failed: %v", err)
}

// DailyReport 用固定请求执行一次流水线，返回带日期抬头的完整报告
func DailyReport(ctx context.Context, runner bot.Runner, request string, now time.Time, loc *time.Location) (string, *engine.State, error) {
	st, err := runner.Run(ctx, request)
	if err != nil {
		return "", st, err
	}
	body := st.RenderedText
	if body == "" {
		body = engine.NoDataText
	}
	return render.Header(now, loc) + body, st, nil
}

// Broadcast 把同一段文本发送给所有会话，返回第一个错误，但不会因此跳过其余会话
func Broadcast(ctx context.Context, sender delivery.Sender, chatIDs []string, text string, maxLen int) error {
	var first error
	for _, id := range chatIDs {
		if err := delivery.Deliver(ctx, sender, id, text, maxLen); err != nil && first == nil {
			first = fmt.Errorf("chat %s: %w", id, err)
		}
	}
	return first
}
