package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/router"
)

// NewLimiter 按 RPM 匀速放行，QPS 作为突发上限
func NewLimiter(c config.ConcurrencyConfig) *rate.Limiter {
	if c.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := c.QPS
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(c.RPM)/60.0), burst)
}

// NewCompleter 根据配置创建补全客户端
func NewCompleter(ctx context.Context, cfg *config.Config) (router.Completer, error) {
	limiter := NewLimiter(cfg.Concurrency)

	switch cfg.LLM.Provider {
	case "", config.ProviderOpenAI:
		c, err := NewOpenAI(ctx, cfg.LLM, limiter)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderGemini:
		c, err := NewGemini(ctx, cfg.LLM, limiter)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
}
