package conf

type Bootstrap struct {
	Server *Server `json:"server"`
	Bot    *Bot    `json:"bot"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// Bot 流水线配置，凭据可以留空由环境变量提供
type Bot struct {
	Llm         *LLM         `json:"llm"`
	Instagram   *Instagram   `json:"instagram"`
	Pinterest   *Pinterest   `json:"pinterest"`
	Apify       *Apify       `json:"apify"`
	Telegram    *Telegram    `json:"telegram"`
	Signals     *Signals     `json:"signals"`
	Pipeline    *Pipeline    `json:"pipeline"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	Db          *DB          `json:"db"`
}

type LLM struct {
	Provider      string  `json:"provider"`
	BaseUrl       string  `json:"base_url"`
	ApiKey        string  `json:"api_key"`
	Model         string  `json:"model"`
	FallbackModel string  `json:"fallback_model"`
	Temperature   float32 `json:"temperature"`
	MaxTokens     int32   `json:"max_tokens"`
	Timeout       int32   `json:"timeout"`
}

type Instagram struct {
	AccessToken  string `json:"access_token"`
	UserId       string `json:"user_id"`
	GraphVersion string `json:"graph_version"`
}

type Pinterest struct {
	AccessToken string `json:"access_token"`
	Region      string `json:"region"`
}

type Apify struct {
	Token     string `json:"token"`
	DatasetId string `json:"dataset_id"`
}

type Telegram struct {
	BotToken      string   `json:"bot_token"`
	ChatIds       []string `json:"chat_ids"`
	WebhookSecret string   `json:"webhook_secret"`
	MaxMessageLen int32    `json:"max_message_len"`
}

type Signals struct {
	TrackedHashtags []string `json:"tracked_hashtags"`
	HashtagLimit    int32    `json:"hashtag_limit"`
	HashtagInterval string   `json:"hashtag_interval"`
	Competitors     []string `json:"competitors"`
}

type Pipeline struct {
	StrictValidation bool   `json:"strict_validation"`
	Timezone         string `json:"timezone"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type DB struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
