package config

import "time"

// LLM 提供方
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// 模型默认值
const (
	DefaultBaseURL       = "https://openrouter.ai/api/v1"
	DefaultModel         = "deepseek/deepseek-chat"
	DefaultFallbackModel = "meta-llama/llama-3.1-8b-instruct:free"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

// ApplyDefaults 补齐未配置的字段
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOpenAI
	}
	if c.LLM.Provider == ProviderOpenAI && c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultBaseURL
	}
	if c.LLM.Model == "" {
		if c.LLM.Provider == ProviderGemini {
			c.LLM.Model = DefaultGeminiModel
		} else {
			c.LLM.Model = DefaultModel
		}
	}
	if c.LLM.FallbackModel == "" {
		if c.LLM.Provider == ProviderGemini {
			c.LLM.FallbackModel = c.LLM.Model
		} else {
			c.LLM.FallbackModel = DefaultFallbackModel
		}
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 3000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60
	}

	if c.Instagram.GraphVersion == "" {
		c.Instagram.GraphVersion = "v19.0"
	}
	if c.Instagram.BaseURL == "" {
		c.Instagram.BaseURL = "https://graph.facebook.com"
	}

	if c.Pinterest.Region == "" {
		c.Pinterest.Region = "ID"
	}
	if c.Pinterest.Interests == "" {
		c.Pinterest.Interests = "womens_fashion,mens_fashion,beauty"
	}
	if c.Pinterest.Limit == 0 {
		c.Pinterest.Limit = 20
	}
	if c.Pinterest.BaseURL == "" {
		c.Pinterest.BaseURL = "https://api.pinterest.com/v5"
	}

	if c.Apify.Limit == 0 {
		c.Apify.Limit = 20
	}
	if c.Apify.BaseURL == "" {
		c.Apify.BaseURL = "https://api.apify.com/v2"
	}

	if c.Telegram.PollTimeout == 0 {
		c.Telegram.PollTimeout = 30
	}
	if c.Telegram.BaseURL == "" {
		c.Telegram.BaseURL = "https://api.telegram.org"
	}

	if len(c.Signals.TrackedHashtags) == 0 {
		c.Signals.TrackedHashtags = append([]string(nil), DefaultTrackedHashtags...)
	}
	if c.Signals.HashtagLimit == 0 {
		c.Signals.HashtagLimit = 6
	}
	if c.Signals.HashtagInterval == 0 {
		c.Signals.HashtagInterval = time.Second
	}
	if c.Signals.MediaSample == 0 {
		c.Signals.MediaSample = 20
	}

	if c.Delivery.MaxMessageLen == 0 {
		c.Delivery.MaxMessageLen = 3500
	}

	if c.Pipeline.Timezone == "" {
		c.Pipeline.Timezone = "Asia/Jakarta"
	}
	if c.Pipeline.DailyRequest == "" {
		c.Pipeline.DailyRequest = "Daily trend report"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Concurrency.QPS == 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM == 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.Workers == 0 {
		c.Concurrency.Workers = 4
	}

	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = "disable"
	}
}
