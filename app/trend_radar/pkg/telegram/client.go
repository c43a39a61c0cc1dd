// Package telegram Telegram Bot API 客户端
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/httpapi"
)

// SecretHeader setWebhook 设置 secret_token 后 Telegram 回调时携带的请求头
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Client Telegram Bot API 客户端
type Client struct {
	baseURL     string
	client      *http.Client
	pollClient  *http.Client
	pollTimeout int
}

// NewClient 创建客户端。长轮询请求的超时比 pollTimeout 多 5 秒。
func NewClient(baseURL, botToken string, pollTimeout int) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/") + "/bot" + botToken,
		client:      httpapi.NewClient(30 * time.Second),
		pollClient:  httpapi.NewClient(time.Duration(pollTimeout+5) * time.Second),
		pollTimeout: pollTimeout,
	}
}

// Update 一条更新
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message,omitempty"`
	EditedMessage *Message `json:"edited_message,omitempty"`
}

// Incoming message 或 edited_message
func (u Update) Incoming() *Message {
	if u.Message != nil {
		return u.Message
	}
	return u.EditedMessage
}

// Message 消息
type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// Chat 会话
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

type response[T any] struct {
	OK          bool   `json:"ok"`
	Result      T      `json:"result"`
	Description string `json:"description"`
}

func check[T any](method string, res *response[T]) error {
	if !res.OK {
		return fmt.Errorf("telegram %s failed: %s", method, res.Description)
	}
	return nil
}

// SendMessage 发送一条消息，不展开链接预览
func (c *Client) SendMessage(ctx context.Context, chatID, text, parseMode string) error {
	payload := map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}
	var res response[map[string]any]
	if err := httpapi.PostJSON(ctx, c.client, "telegram", c.baseURL+"/sendMessage", payload, &res); err != nil {
		return err
	}
	return check("sendMessage", &res)
}

// GetUpdates 长轮询获取 offset 之后的更新，offset 为 0 时不带该参数
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	params := url.Values{"timeout": {strconv.Itoa(c.pollTimeout)}}
	if offset > 0 {
		params.Set("offset", strconv.FormatInt(offset, 10))
	}
	var res response[[]Update]
	if err := httpapi.Get(ctx, c.pollClient, "telegram", c.baseURL+"/getUpdates?"+params.Encode(), nil, &res); err != nil {
		return nil, err
	}
	if err := check("getUpdates", &res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// SetWebhook 注册 webhook，secret 非空时要求回调携带 SecretHeader
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secret string) (string, error) {
	payload := map[string]string{"url": webhookURL}
	if secret != "" {
		payload["secret_token"] = secret
	}
	var res response[bool]
	if err := httpapi.PostJSON(ctx, c.client, "telegram", c.baseURL+"/setWebhook", payload, &res); err != nil {
		return "", err
	}
	if err := check("setWebhook", &res); err != nil {
		return "", err
	}
	return res.Description, nil
}
