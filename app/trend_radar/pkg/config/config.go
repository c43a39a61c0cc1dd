package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Instagram   InstagramConfig   `yaml:"instagram"`
	Pinterest   PinterestConfig   `yaml:"pinterest"`
	Apify       ApifyConfig       `yaml:"apify"`
	Telegram    TelegramConfig    `yaml:"telegram"`
	Signals     SignalsConfig     `yaml:"signals"`
	Delivery    DeliveryConfig    `yaml:"delivery"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider      string  `yaml:"provider"` // openai | gemini
	BaseURL       string  `yaml:"base_url"`
	APIKey        string  `yaml:"api_key"`
	Model         string  `yaml:"model"`
	FallbackModel string  `yaml:"fallback_model"`
	Temperature   float32 `yaml:"temperature"`
	MaxTokens     int     `yaml:"max_tokens"`
	Timeout       int     `yaml:"timeout"` // 秒
}

// InstagramConfig Instagram Graph API 配置
type InstagramConfig struct {
	AccessToken  string `yaml:"access_token"`
	UserID       string `yaml:"user_id"`
	GraphVersion string `yaml:"graph_version"`
	BaseURL      string `yaml:"base_url"`
}

// PinterestConfig Pinterest 趋势接口配置
type PinterestConfig struct {
	AccessToken string `yaml:"access_token"`
	Region      string `yaml:"region"`
	Interests   string `yaml:"interests"`
	Limit       int    `yaml:"limit"`
	BaseURL     string `yaml:"base_url"`
}

// ApifyConfig Apify 数据集配置
type ApifyConfig struct {
	Token     string `yaml:"token"`
	DatasetID string `yaml:"dataset_id"`
	Limit     int    `yaml:"limit"`
	BaseURL   string `yaml:"base_url"`
}

// TelegramConfig Telegram 机器人配置
type TelegramConfig struct {
	BotToken      string   `yaml:"bot_token"`
	ChatIDs       []string `yaml:"chat_ids"`
	WebhookURL    string   `yaml:"webhook_url"`
	WebhookSecret string   `yaml:"webhook_secret"`
	PollTimeout   int      `yaml:"poll_timeout"` // 秒
	BaseURL       string   `yaml:"base_url"`
}

// SignalsConfig 信号采集配置
type SignalsConfig struct {
	TrackedHashtags []string      `yaml:"tracked_hashtags"`
	HashtagLimit    int           `yaml:"hashtag_limit"`
	HashtagInterval time.Duration `yaml:"hashtag_interval"`
	MediaSample     int           `yaml:"media_sample"`
	Competitors     []string      `yaml:"competitors"`
}

// DeliveryConfig 消息投递配置
type DeliveryConfig struct {
	MaxMessageLen int `yaml:"max_message_len"`
}

// PipelineConfig 生成流水线配置
type PipelineConfig struct {
	StrictValidation bool   `yaml:"strict_validation"`
	Timezone         string `yaml:"timezone"`
	DailyRequest     string `yaml:"daily_request"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
	// Workers 轮询模式下同时处理的消息数
	Workers int `yaml:"workers"`
}

// DBConfig 数据库相关配置，Host 为空时不归档
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled 是否配置了数据库
func (c DBConfig) Enabled() bool { return c.Host != "" }

// DefaultTrackedHashtags 默认跟踪的话题标签
var DefaultTrackedHashtags = []string{
	"ootd",
	"outfitoftheday",
	"fashionblogger",
	"streetstyle",
	"fashionindonesia",
	"ootdindonesia",
	"hijabfashion",
	"sustainablefashion",
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load 加载 .env、配置文件与环境变量，最后补齐默认值。
// path 为空时只使用环境变量；.env 不存在不算错误。
func Load(path string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(os.LookupEnv)
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyEnv 用环境变量覆盖凭据类配置
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("LLM_PROVIDER"); ok && v != "" {
		c.LLM.Provider = v
	}
	if c.LLM.Provider == ProviderGemini {
		set(&c.LLM.APIKey, "GEMINI_API_KEY")
	} else {
		set(&c.LLM.APIKey, "OPENROUTER_API_KEY")
	}

	set(&c.Instagram.AccessToken, "INSTAGRAM_ACCESS_TOKEN")
	set(&c.Instagram.UserID, "INSTAGRAM_USER_ID")
	set(&c.Instagram.GraphVersion, "GRAPH_API_VERSION")

	set(&c.Pinterest.AccessToken, "PINTEREST_ACCESS_TOKEN")
	set(&c.Pinterest.Region, "PINTEREST_REGION")

	set(&c.Apify.Token, "APIFY_TOKEN")
	set(&c.Apify.DatasetID, "APIFY_DATASET_ID")

	set(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	set(&c.Telegram.WebhookURL, "TELEGRAM_WEBHOOK_URL")
	set(&c.Telegram.WebhookSecret, "TELEGRAM_WEBHOOK_SECRET")
	if v, ok := lookup("TELEGRAM_CHAT_ID"); ok && v != "" {
		c.Telegram.ChatIDs = SplitList(v)
	}

	set(&c.DB.Host, "DB_HOST")
	set(&c.DB.User, "DB_USER")
	set(&c.DB.Password, "DB_PASSWORD")
	set(&c.DB.Name, "DB_NAME")
	if v, ok := lookup("DB_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.DB.Port = port
		}
	}
}

// SplitList 解析逗号分隔的列表，忽略空项
func SplitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Location 报告使用的时区，加载失败时退回 UTC+7
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Pipeline.Timezone)
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}
