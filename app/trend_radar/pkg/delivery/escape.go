// Package delivery 负责把渲染好的报告安全地投递到 Telegram：先转义，再分段。
package delivery

import "strings"

// reserved MarkdownV2 保留字符
const reserved = "\\_*[]()~`>#+-=|{}.!"

// Escape 对保留字符逐个加反斜杠。只做一次从左到右的扫描，
// 对同一段原文重复调用会重复转义。
func Escape(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + len(text)/8)
	for _, r := range text {
		if strings.ContainsRune(reserved, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Unescape 去掉 Escape 加上的反斜杠
func Unescape(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	escaped := false
	for _, r := range text {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
