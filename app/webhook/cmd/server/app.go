package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trend_radar/app/webhook/internal/conf"
	"github.com/iWorld-y/trend_radar/app/webhook/internal/server"
)

// initApp 组装 webhook 应用，cleanup 按创建的逆序释放资源
func initApp(s *conf.Server, b *conf.Bot, logger log.Logger) (*kratos.App, func(), error) {
	cfg := server.BotConfig(b)
	r, cleanupRadar, err := server.NewRadar(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	dispatcher, cleanupDispatcher := server.NewDispatcher(r)
	hs := server.NewHTTPServer(s, cfg.Telegram.WebhookSecret, dispatcher, logger)
	app := newApp(logger, hs)
	return app, func() {
		cleanupDispatcher()
		cleanupRadar()
	}, nil
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
