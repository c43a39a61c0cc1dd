package config

import (
	"fmt"
	"strings"
)

// ConfigError 启动前发现缺少必需的凭据或配置，进程应直接退出
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required config: %s", strings.Join(e.Missing, ", "))
}

// Requirement 一项必需配置
type Requirement struct {
	Name string
	OK   func(*Config) bool
}

func nonEmpty(name string, get func(*Config) string) Requirement {
	return Requirement{Name: name, OK: func(c *Config) bool { return strings.TrimSpace(get(c)) != "" }}
}

// 常用检查项，名称与环境变量一致
var (
	NeedLLMKey = Requirement{
		Name: "OPENROUTER_API_KEY | GEMINI_API_KEY",
		OK:   func(c *Config) bool { return c.LLM.APIKey != "" },
	}
	NeedBotToken   = nonEmpty("TELEGRAM_BOT_TOKEN", func(c *Config) string { return c.Telegram.BotToken })
	NeedIGToken    = nonEmpty("INSTAGRAM_ACCESS_TOKEN", func(c *Config) string { return c.Instagram.AccessToken })
	NeedIGUser     = nonEmpty("INSTAGRAM_USER_ID", func(c *Config) string { return c.Instagram.UserID })
	NeedWebhookURL = nonEmpty("TELEGRAM_WEBHOOK_URL", func(c *Config) string { return c.Telegram.WebhookURL })
	NeedChatIDs    = Requirement{
		Name: "TELEGRAM_CHAT_ID",
		OK:   func(c *Config) bool { return len(c.Telegram.ChatIDs) > 0 },
	}
)

// Require 检查所有必需项，返回列出全部缺失项的 *ConfigError
func (c *Config) Require(reqs ...Requirement) error {
	var missing []string
	for _, r := range reqs {
		if !r.OK(c) {
			missing = append(missing, r.Name)
		}
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}
