package delivery

import (
	"context"
	"fmt"
)

// ParseModeMarkdownV2 Telegram 的 MarkdownV2 排版模式
const ParseModeMarkdownV2 = "MarkdownV2"

// Sender 消息发送方
type Sender interface {
	SendMessage(ctx context.Context, chatID, text, parseMode string) error
}

// Encode 转义后分段
func Encode(text string, maxLen int) []string {
	return Chunk(Escape(text), maxLen)
}

// Deliver 依次发送每一段，遇到第一个发送错误即停止
func Deliver(ctx context.Context, sender Sender, chatID, text string, maxLen int) error {
	parts := Encode(text, maxLen)
	for i, part := range parts {
		if err := sender.SendMessage(ctx, chatID, part, ParseModeMarkdownV2); err != nil {
			return fmt.Errorf("send part %d/%d: %w", i+1, len(parts), err)
		}
	}
	return nil
}
