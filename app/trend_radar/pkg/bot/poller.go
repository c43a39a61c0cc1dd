package bot

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/telegram"
)

// UpdateSource 长轮询来源，由 telegram.Client 实现
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error)
}

// Poller 长轮询循环
type Poller struct {
	source     UpdateSource
	handler    *Handler
	workers    int
	retryDelay time.Duration
	log        *logrus.Entry
}

// NewPoller workers 为同一批更新的最大并发处理数
func NewPoller(source UpdateSource, handler *Handler, workers int, log *logrus.Entry) *Poller {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Poller{
		source:     source,
		handler:    handler,
		workers:    workers,
		retryDelay: 5 * time.Second,
		log:        log,
	}
}

// Run 持续拉取更新直到 ctx 取消。拉取失败时等待 retryDelay 后重试。
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info("Telegram 长轮询已启动")
	var offset int64
	for {
		if ctx.Err() != nil {
			p.log.Info("Telegram 长轮询已停止")
			return nil
		}
		next, err := p.Poll(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.log.Errorf("拉取更新失败: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(p.retryDelay):
			}
			continue
		}
		offset = next
	}
}

// Poll 拉取并处理一批更新，返回下一次拉取的 offset。
// 同一批内的更新并发处理，全部完成后才返回。
func (p *Poller) Poll(ctx context.Context, offset int64) (int64, error) {
	updates, err := p.source.GetUpdates(ctx, offset)
	if err != nil {
		return offset, err
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for _, u := range updates {
		if u.UpdateID >= offset {
			offset = u.UpdateID + 1
		}
		g.Go(func() error {
			if err := p.handler.HandleUpdate(ctx, u); err != nil {
				p.log.Errorf("处理更新 [%d] 失败: %v", u.UpdateID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return offset, nil
}
