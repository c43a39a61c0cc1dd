package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  model: "custom/model"
  temperature: 0.2
telegram:
  chat_ids: ["1", "2"]
signals:
  hashtag_interval: 250ms
  competitors: [brand_a]
pipeline:
  strict_validation: true
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "custom/model", cfg.LLM.Model)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, []string{"1", "2"}, cfg.Telegram.ChatIDs)
	assert.Equal(t, 250*time.Millisecond, cfg.Signals.HashtagInterval)
	assert.Equal(t, []string{"brand_a"}, cfg.Signals.Competitors)
	assert.True(t, cfg.Pipeline.StrictValidation)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyEnv(envMap(map[string]string{
		"OPENROUTER_API_KEY":     "or-key",
		"TELEGRAM_CHAT_ID":       "123, 456,,",
		"TELEGRAM_BOT_TOKEN":     "bot",
		"INSTAGRAM_ACCESS_TOKEN": "ig",
		"PINTEREST_REGION":       "US",
		"DB_PORT":                "6543",
	}))

	assert.Equal(t, "or-key", cfg.LLM.APIKey)
	assert.Equal(t, []string{"123", "456"}, cfg.Telegram.ChatIDs)
	assert.Equal(t, "bot", cfg.Telegram.BotToken)
	assert.Equal(t, "ig", cfg.Instagram.AccessToken)
	assert.Equal(t, "US", cfg.Pinterest.Region)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestApplyEnv_GeminiKey(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Provider: ProviderGemini}}
	cfg.ApplyEnv(envMap(map[string]string{
		"OPENROUTER_API_KEY": "or-key",
		"GEMINI_API_KEY":     "g-key",
	}))
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, DefaultBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
	assert.Equal(t, DefaultFallbackModel, cfg.LLM.FallbackModel)
	assert.Equal(t, 3000, cfg.LLM.MaxTokens)
	assert.Equal(t, 60, cfg.LLM.Timeout)
	assert.Equal(t, DefaultTrackedHashtags, cfg.Signals.TrackedHashtags)
	assert.Equal(t, 6, cfg.Signals.HashtagLimit)
	assert.Equal(t, time.Second, cfg.Signals.HashtagInterval)
	assert.Equal(t, 3500, cfg.Delivery.MaxMessageLen)
	assert.Equal(t, "Asia/Jakarta", cfg.Pipeline.Timezone)
	assert.Equal(t, "v19.0", cfg.Instagram.GraphVersion)
	assert.False(t, cfg.DB.Enabled())
}

func TestRequire(t *testing.T) {
	cfg := &Config{}
	err := cfg.Require(NeedBotToken, NeedLLMKey, NeedChatIDs)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"TELEGRAM_BOT_TOKEN", "OPENROUTER_API_KEY | GEMINI_API_KEY", "TELEGRAM_CHAT_ID"}, ce.Missing)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")

	cfg.Telegram.BotToken = "x"
	cfg.LLM.APIKey = "y"
	cfg.Telegram.ChatIDs = []string{"1"}
	assert.NoError(t, cfg.Require(NeedBotToken, NeedLLMKey, NeedChatIDs))
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TELEGRAM_WEBHOOK_SECRET=from-dotenv\n"), 0o644))
	t.Setenv("TELEGRAM_WEBHOOK_SECRET", "")
	require.NoError(t, os.Unsetenv("TELEGRAM_WEBHOOK_SECRET"))
	t.Setenv("APIFY_DATASET_ID", "ds-1")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Telegram.WebhookSecret)
	assert.Equal(t, "ds-1", cfg.Apify.DatasetID)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)

	// 缺少 .env 文件不报错
	_, err = Load("", filepath.Join(dir, "nope.env"))
	assert.NoError(t, err)
}

func TestLocation(t *testing.T) {
	cfg := &Config{Pipeline: PipelineConfig{Timezone: "Not/AZone"}}
	_, offset := time.Now().In(cfg.Location()).Zone()
	assert.Equal(t, 7*3600, offset)
}
