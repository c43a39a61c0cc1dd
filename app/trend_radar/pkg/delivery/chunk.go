package delivery

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLen 单条消息的默认长度上限（Telegram 上限 4096，留出余量）
const DefaultMaxLen = 3500

const paragraphSep = "\n\n"

// Chunk 按段落（空行分隔）贪心打包，每段不超过 maxLen 个字符。
// 单个段落超长时按 maxLen 硬切，切口不会落在转义反斜杠之后。
func Chunk(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var (
		parts   []string
		current []string
		curLen  int
	)
	flush := func() {
		if len(current) > 0 {
			parts = append(parts, strings.Join(current, paragraphSep))
			current, curLen = nil, 0
		}
	}

	for _, p := range strings.Split(text, paragraphSep) {
		n := utf8.RuneCountInString(p)
		if n > maxLen {
			flush()
			parts = append(parts, hardCut(p, maxLen)...)
			continue
		}
		if len(current) > 0 && curLen+len(paragraphSep)+n > maxLen {
			flush()
		}
		if len(current) > 0 {
			curLen += len(paragraphSep)
		}
		current = append(current, p)
		curLen += n
	}
	flush()
	return parts
}

// hardCut 把超长段落切成固定窗口
func hardCut(p string, maxLen int) []string {
	runes := []rune(p)
	var out []string
	for len(runes) > 0 {
		end := min(maxLen, len(runes))
		if end < len(runes) && end > 1 && danglingEscape(runes[:end]) {
			end--
		}
		out = append(out, string(runes[:end]))
		runes = runes[end:]
	}
	return out
}

// danglingEscape 窗口末尾是否是一个还没有转义目标的反斜杠
func danglingEscape(window []rune) bool {
	run := 0
	for i := len(window) - 1; i >= 0 && window[i] == '\\'; i-- {
		run++
	}
	return run%2 == 1
}
