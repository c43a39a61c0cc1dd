package server

import (
	"crypto/subtle"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/telegram"
	"github.com/iWorld-y/trend_radar/app/webhook/internal/conf"
)

// WebhookPath Telegram 回调地址
const WebhookPath = "/telegram/webhook"

// UpdateDispatcher 异步处理更新，由 bot.Dispatcher 实现
type UpdateDispatcher interface {
	Dispatch(u telegram.Update)
}

// NewHTTPServer 创建 webhook 服务。secret 非空时校验 Telegram 携带的 secret token。
func NewHTTPServer(c *conf.Server, secret string, d UpdateDispatcher, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if timeout, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(timeout))
			}
		}
	}

	srv := http.NewServer(opts...)
	helper := log.NewHelper(logger)

	r := srv.Route("/")
	r.POST(WebhookPath, func(ctx http.Context) error {
		if secret != "" {
			got := ctx.Header().Get(telegram.SecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				helper.Warn("rejected webhook call with invalid secret token")
				return errors.Unauthorized("INVALID_SECRET", "Invalid secret token")
			}
		}

		var u telegram.Update
		if err := ctx.Bind(&u); err != nil {
			return err
		}
		d.Dispatch(u)
		return ctx.JSON(200, map[string]bool{"ok": true})
	})

	return srv
}
