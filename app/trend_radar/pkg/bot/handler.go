// Package bot 把 Telegram 消息交给流水线处理并回复结果，支持长轮询与 webhook 两种接入方式。
package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/delivery"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/storage"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/telegram"
)

// ErrorReply 流水线失败时回复的固定文案
const ErrorReply = "Maaf, terjadi error saat mengambil data. Coba lagi nanti."

// Runner 执行一次流水线，由 engine.Engine 实现
type Runner interface {
	Run(ctx context.Context, userMessage string) (*engine.State, error)
}

// Archiver 运行归档，由 storage.Storage 实现
type Archiver interface {
	SaveRun(ctx context.Context, run storage.Run) error
}

// Handler 处理单条更新
type Handler struct {
	runner   Runner
	sender   delivery.Sender
	allowed  map[string]struct{}
	maxLen   int
	archiver Archiver
	log      *logrus.Entry
}

// Option Handler 选项
type Option func(*Handler)

// WithArchiver 每次运行后写入归档
func WithArchiver(a Archiver) Option {
	return func(h *Handler) { h.archiver = a }
}

// WithMaxLen 单条消息最大长度
func WithMaxLen(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxLen = n
		}
	}
}

// NewHandler 创建处理器。allowed 为空时接受所有会话。
func NewHandler(runner Runner, sender delivery.Sender, allowed []string, log *logrus.Entry, opts ...Option) *Handler {
	h := &Handler{
		runner:  runner,
		sender:  sender,
		allowed: make(map[string]struct{}, len(allowed)),
		maxLen:  delivery.DefaultMaxLen,
		log:     log,
	}
	for _, id := range allowed {
		h.allowed[id] = struct{}{}
	}
	if h.log == nil {
		h.log = logrus.NewEntry(logrus.StandardLogger())
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Allowed 会话是否在白名单内
func (h *Handler) Allowed(chatID string) bool {
	if len(h.allowed) == 0 {
		return true
	}
	_, ok := h.allowed[chatID]
	return ok
}

// HandleUpdate 处理 message 或 edited_message。没有文本或会话不在白名单的更新直接忽略；
// 流水线失败时回复 ErrorReply，保证对方总能收到消息。
func (h *Handler) HandleUpdate(ctx context.Context, u telegram.Update) error {
	msg := u.Incoming()
	if msg == nil || msg.Chat.ID == 0 {
		return nil
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if !h.Allowed(chatID) {
		h.log.Debugf("忽略白名单外的会话 [%s]", chatID)
		return nil
	}

	log := h.log.WithField("chat_id", chatID)
	log.Infof("收到消息: %s", truncate(text, 200))

	st, err := h.runner.Run(ctx, text)
	var reply string
	switch {
	case err != nil:
		log.Errorf("流水线执行失败: %v", err)
		reply = ErrorReply
	case st.RenderedText == "":
		reply = engine.NoDataText
	default:
		reply = st.RenderedText
	}
	h.archive(ctx, log, st, chatID, err)

	if err := delivery.Deliver(ctx, h.sender, chatID, reply, h.maxLen); err != nil {
		return err
	}
	log.Infof("回复已发送，共 %d 段", len(delivery.Encode(reply, h.maxLen)))
	return nil
}

func (h *Handler) archive(ctx context.Context, log *logrus.Entry, st *engine.State, chatID string, runErr error) {
	if h.archiver == nil || st == nil {
		return
	}
	run, err := storage.RunFromState(st, chatID, runErr)
	if err == nil {
		err = h.archiver.SaveRun(ctx, run)
	}
	if err != nil {
		log.Warnf("归档失败: %v", err)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Dispatcher 为每条更新启动独立的 goroutine，webhook 收到请求后立即返回
type Dispatcher struct {
	ctx     context.Context
	handler *Handler
	wg      sync.WaitGroup
}

// NewDispatcher ctx 取消后进行中的流水线随之取消
func NewDispatcher(ctx context.Context, handler *Handler) *Dispatcher {
	return &Dispatcher{ctx: ctx, handler: handler}
}

// Dispatch 异步处理一条更新
func (d *Dispatcher) Dispatch(u telegram.Update) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.handler.HandleUpdate(d.ctx, u); err != nil && !errors.Is(err, context.Canceled) {
			d.handler.log.Errorf("处理更新 [%d] 失败: %v", u.UpdateID, err)
		}
	}()
}

// Wait 等待所有进行中的更新处理完毕
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
