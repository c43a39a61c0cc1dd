package signals

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/instagram"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/pinterest"
)

// InstagramAPI 采集用到的 Instagram 接口
type InstagramAPI interface {
	Profile(ctx context.Context, userID string) (*instagram.Profile, error)
	UserMedia(ctx context.Context, userID string, limit int) (*instagram.MediaPage, error)
	HashtagID(ctx context.Context, hashtag, userID string) (string, bool, error)
	HashtagTopMedia(ctx context.Context, hashtagID, userID string, limit int) (*instagram.MediaPage, error)
	HashtagRecentMedia(ctx context.Context, hashtagID, userID string, limit int) (*instagram.MediaPage, error)
	BusinessDiscovery(ctx context.Context, userID, username string) (*instagram.BusinessAccount, error)
}

// TrendAPI 趋势关键词接口
type TrendAPI interface {
	TrendKeywords(ctx context.Context, region, trendType string) (*pinterest.TrendsResponse, error)
}

// DatasetAPI 第三方数据集接口
type DatasetAPI interface {
	DatasetItems(ctx context.Context, datasetID string, limit int) ([]map[string]any, error)
}

// Options 采集参数
type Options struct {
	UserID          string
	Hashtags        []string
	HashtagLimit    int
	HashtagInterval time.Duration
	MediaSample     int
	UserMediaLimit  int
	Competitors     []string
	Region          string
	DatasetID       string
	DatasetLimit    int
	// FallbackTrends Pinterest 不可用时使用内置趋势列表
	FallbackTrends bool
}

// Collector 各数据源的采集入口。每个方法独立兜底：失败时返回带说明的证据包，从不返回错误。
type Collector struct {
	ig    InstagramAPI
	trend TrendAPI
	data  DatasetAPI
	opts  Options
	pace  *rate.Limiter
	log   *logrus.Entry
}

// NewCollector 创建采集器，未配置的数据源传 nil
func NewCollector(ig InstagramAPI, trend TrendAPI, data DatasetAPI, opts Options, log *logrus.Entry) *Collector {
	if opts.HashtagLimit <= 0 {
		opts.HashtagLimit = 6
	}
	if opts.MediaSample <= 0 {
		opts.MediaSample = 20
	}
	if opts.UserMediaLimit <= 0 {
		opts.UserMediaLimit = 30
	}
	if opts.DatasetLimit <= 0 {
		opts.DatasetLimit = 20
	}
	pace := rate.NewLimiter(rate.Inf, 1)
	if opts.HashtagInterval > 0 {
		pace = rate.NewLimiter(rate.Every(opts.HashtagInterval), 1)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Collector{ig: ig, trend: trend, data: data, opts: opts, pace: pace, log: log}
}

func (c *Collector) igReady() bool { return c.ig != nil && c.opts.UserID != "" }

var notConfigured = model.Note{Note: "Instagram client not configured"}

// Profile 账号资料
func (c *Collector) Profile(ctx context.Context) model.ProfileBundle {
	if !c.igReady() {
		return model.ProfileBundle{Note: notConfigured}
	}
	p, err := c.ig.Profile(ctx, c.opts.UserID)
	if err != nil {
		c.log.Warnf("获取 Instagram 账号资料失败: %v", err)
		return model.ProfileBundle{Note: model.ErrorNote("Instagram profile error", err)}
	}
	return model.ProfileBundle{
		Username:       p.Username,
		Biography:      p.Biography,
		FollowersCount: p.FollowersCount,
		MediaCount:     p.MediaCount,
	}
}

// UserStats 账号近期帖子表现
func (c *Collector) UserStats(ctx context.Context) model.UserStatsBundle {
	if !c.igReady() {
		return model.UserStatsBundle{Note: notConfigured}
	}
	page, err := c.ig.UserMedia(ctx, c.opts.UserID, c.opts.UserMediaLimit)
	if err != nil {
		c.log.Warnf("获取 Instagram 帖子失败: %v", err)
		return model.UserStatsBundle{Note: model.ErrorNote("Instagram media error", err)}
	}
	return SummarizeUserMedia(page)
}

// Hashtags 依次查询跟踪的话题标签，相邻两次查询之间按 HashtagInterval 限速
func (c *Collector) Hashtags(ctx context.Context) []model.HashtagBundle {
	if !c.igReady() {
		return []model.HashtagBundle{}
	}
	tags := c.opts.Hashtags
	if len(tags) > c.opts.HashtagLimit {
		tags = tags[:c.opts.HashtagLimit]
	}

	out := make([]model.HashtagBundle, 0, len(tags))
	for _, tag := range tags {
		if err := c.pace.Wait(ctx); err != nil {
			out = append(out, model.HashtagBundle{Hashtag: tag, Note: model.ErrorNote("hashtag error", err)})
			continue
		}
		out = append(out, c.hashtag(ctx, tag))
	}
	return out
}

func (c *Collector) hashtag(ctx context.Context, tag string) model.HashtagBundle {
	id, found, err := c.ig.HashtagID(ctx, tag, c.opts.UserID)
	if err != nil {
		c.log.Warnf("查询话题标签 [%s] 失败: %v", tag, err)
		return model.HashtagBundle{Hashtag: tag, Note: model.ErrorNote("hashtag error", err)}
	}
	if !found {
		return model.HashtagBundle{Hashtag: tag, Note: model.Note{Note: "not found"}}
	}

	top, err := c.ig.HashtagTopMedia(ctx, id, c.opts.UserID, 15)
	if err != nil {
		c.log.Warnf("获取话题标签 [%s] 热门帖子失败: %v", tag, err)
		return model.HashtagBundle{Hashtag: tag, Note: model.ErrorNote("hashtag error", err)}
	}
	recent, err := c.ig.HashtagRecentMedia(ctx, id, c.opts.UserID, 15)
	if err != nil {
		c.log.Warnf("获取话题标签 [%s] 最新帖子失败: %v", tag, err)
		return model.HashtagBundle{Hashtag: tag, Note: model.ErrorNote("hashtag error", err)}
	}
	return model.HashtagBundle{
		Hashtag:       tag,
		TopSummary:    SummarizeMediaItems(head(top.Data, c.opts.MediaSample), mediaKeywords),
		RecentSummary: SummarizeMediaItems(head(recent.Data, c.opts.MediaSample), mediaKeywords),
	}
}

// Trends 合并 growing 与 monthly 两类趋势关键词
func (c *Collector) Trends(ctx context.Context) model.TrendBundle {
	if c.trend == nil {
		if c.opts.FallbackTrends {
			return model.TrendBundle{Trends: FallbackTrends(), Origin: "fallback"}
		}
		return model.TrendBundle{Trends: []model.TrendKeyword{}, Note: model.Note{Note: "Pinterest client not configured"}}
	}

	var combined []model.TrendKeyword
	for _, trendType := range []string{pinterest.TrendGrowing, pinterest.TrendMonthly} {
		res, err := c.trend.TrendKeywords(ctx, c.opts.Region, trendType)
		if err != nil {
			c.log.Warnf("获取 Pinterest [%s] 趋势失败: %v", trendType, err)
			if c.opts.FallbackTrends {
				return model.TrendBundle{Trends: FallbackTrends(), Origin: fmt.Sprintf("fallback: %v", err)}
			}
			return model.TrendBundle{Trends: []model.TrendKeyword{}, Note: model.ErrorNote("Pinterest error", err)}
		}
		for _, t := range res.Trends {
			combined = append(combined, model.TrendKeyword{
				Keyword:      t.Keyword,
				TrendType:    trendType,
				PctGrowthWoW: t.PctGrowthWoW,
				PctGrowthMoM: t.PctGrowthMoM,
				PctGrowthYoY: t.PctGrowthYoY,
				Demographics: t.Demographics,
				Prediction:   t.Prediction,
			})
		}
	}
	if combined == nil {
		combined = []model.TrendKeyword{}
	}
	return model.TrendBundle{Trends: combined, Origin: "pinterest_api"}
}

// Dataset 第三方数据集条目与关键词
func (c *Collector) Dataset(ctx context.Context) model.DatasetBundle {
	if c.data == nil {
		return model.DatasetBundle{Items: []map[string]any{}, Note: model.Note{Note: "Apify client not configured"}}
	}
	items, err := c.data.DatasetItems(ctx, c.opts.DatasetID, c.opts.DatasetLimit)
	if err != nil {
		c.log.Warnf("获取 Apify 数据集失败: %v", err)
		return model.DatasetBundle{Items: []map[string]any{}, Note: model.ErrorNote("Apify error", err)}
	}
	captions := make([]string, 0, len(items))
	for _, item := range items {
		if v, ok := item["caption"]; ok && v != nil {
			captions = append(captions, fmt.Sprint(v))
		}
	}
	return model.DatasetBundle{Items: items, TopKeywords: ExtractKeywords(captions, userKeywords)}
}

// Competitors 通过 business_discovery 查询竞品账号
func (c *Collector) Competitors(ctx context.Context) []model.CompetitorBundle {
	out := []model.CompetitorBundle{}
	if !c.igReady() {
		return out
	}
	for _, username := range c.opts.Competitors {
		acc, err := c.ig.BusinessDiscovery(ctx, c.opts.UserID, username)
		if err != nil {
			c.log.Warnf("查询竞品账号 [%s] 失败: %v", username, err)
			out = append(out, model.CompetitorBundle{Username: username, Note: model.ErrorNote("competitor error", err)})
			continue
		}
		out = append(out, SummarizeCompetitor(acc))
	}
	return out
}

// FallbackTrends Pinterest 不可用时的内置趋势
func FallbackTrends() []model.TrendKeyword {
	return []model.TrendKeyword{
		{Keyword: "modest layering", Demographics: map[string]any{}, Prediction: map[string]any{"direction": "up", "confidence": 0.6}, Source: "fallback"},
		{Keyword: "linen set", Demographics: map[string]any{}, Prediction: map[string]any{"direction": "up", "confidence": 0.55}, Source: "fallback"},
		{Keyword: "neutral palette", Demographics: map[string]any{}, Prediction: map[string]any{"direction": "stable", "confidence": 0.5}, Source: "fallback"},
	}
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
