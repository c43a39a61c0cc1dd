// Package prompt 为流水线各阶段组装 JSON 格式的提示词。
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/contract"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// SystemPrompt 所有生成调用共用的系统提示词
const SystemPrompt = "You are TrendAnalyst, an expert fashion/lifestyle content strategist for Indonesia. " +
	"Respond in bilingual format (Bahasa Indonesia and English). Be specific, actionable, " +
	"data-driven, and prioritize clarity. Do not invent data. Use only the provided data."

const (
	ruleJSONOnly  = "Return ONLY valid JSON. No extra text."
	ruleBilingual = "Bilingual output: provide Bahasa Indonesia and English fields."
	ruleMissing   = "If data is missing, use null and write 'data tidak tersedia' / 'data not available'."
	ruleCounts    = "Return exactly 3 top_trends and 5 content_ideas."
)

// Signals 各数据源的证据，按提示词中的字段排列
type Signals struct {
	Profile     model.ProfileBundle      `json:"profile"`
	UserStats   model.UserStatsBundle    `json:"user_stats"`
	Hashtags    []model.HashtagBundle    `json:"instagram_hashtags"`
	Trends      model.TrendBundle        `json:"pinterest_trends"`
	Dataset     model.DatasetBundle      `json:"apify_trends"`
	Competitors []model.CompetitorBundle `json:"competitors"`
}

// Collect 把证据包逐个放入对应字段
func Collect(bundles []model.Bundle) Signals {
	s := Signals{
		Hashtags:    []model.HashtagBundle{},
		Competitors: []model.CompetitorBundle{},
	}
	for _, b := range bundles {
		switch b := b.(type) {
		case model.ProfileBundle:
			s.Profile = b
		case model.UserStatsBundle:
			s.UserStats = b
		case model.HashtagBundle:
			s.Hashtags = append(s.Hashtags, b)
		case model.TrendBundle:
			s.Trends = b
		case model.DatasetBundle:
			s.Dataset = b
		case model.CompetitorBundle:
			s.Competitors = append(s.Competitors, b)
		default:
			panic(fmt.Sprintf("prompt: unhandled bundle %T", b))
		}
	}
	if s.Trends.Trends == nil {
		s.Trends.Trends = []model.TrendKeyword{}
	}
	if s.Dataset.Items == nil {
		s.Dataset.Items = []map[string]any{}
	}
	return s
}

// Intent 意图抽取提示词
func Intent(userMessage string) string {
	return dump(struct {
		Task         string          `json:"task"`
		Rules        []string        `json:"rules"`
		OutputSchema json.RawMessage `json:"output_schema"`
		UserMessage  string          `json:"user_message"`
	}{
		Task: "Extract intent and constraints from the user message.",
		Rules: []string{
			"Return ONLY valid JSON.",
			"If unclear, default to: 'content recommendation for today'.",
		},
		OutputSchema: json.RawMessage(`{"intent_id": "string", "intent_en": "string", "constraints": ["string"]}`),
		UserMessage:  userMessage,
	})
}

// Summary 信号摘要提示词
func Summary(bundles []model.Bundle) string {
	return dump(struct {
		Task         string          `json:"task"`
		Rules        []string        `json:"rules"`
		OutputSchema json.RawMessage `json:"output_schema"`
		Data         Signals         `json:"data"`
	}{
		Task: "Summarize signals from data for a content strategist.",
		Rules: []string{
			"Return ONLY valid JSON.",
			"Bilingual output.",
			"Use only provided data.",
		},
		OutputSchema: json.RawMessage(`{
			"audience_id": "string",
			"audience_en": "string",
			"top_themes_id": ["string"],
			"top_themes_en": ["string"],
			"content_formats_id": ["string"],
			"content_formats_en": ["string"],
			"risk_notes_id": ["string"],
			"risk_notes_en": ["string"]
		}`),
		Data: Collect(bundles),
	})
}

type strategyContext struct {
	Market      string `json:"market"`
	Timezone    string `json:"timezone"`
	Language    string `json:"language"`
	UserRequest string `json:"user_request"`
	// Intent 仅在意图抽取得到约束时附带
	Intent *model.Intent `json:"intent,omitempty"`
}

type influencerProfile struct {
	model.ProfileBundle
	Signals model.SignalsSummary `json:"signals"`
}

// Strategy 策略生成提示词：上下文、全部证据、输出结构与生成要求
func Strategy(userRequest string, intent model.Intent, summary model.SignalsSummary, bundles []model.Bundle) string {
	s := Collect(bundles)
	ctx := strategyContext{
		Market:      "Indonesia",
		Timezone:    "WIB (UTC+7)",
		Language:    "Bahasa Indonesia + English",
		UserRequest: userRequest,
	}
	if len(intent.Constraints) > 0 {
		ctx.Intent = &intent
	}

	return dump(struct {
		Context           strategyContext          `json:"context"`
		InfluencerProfile influencerProfile        `json:"influencer_profile"`
		UserPerformance   model.UserStatsBundle    `json:"user_performance"`
		Hashtags          []model.HashtagBundle    `json:"instagram_hashtags"`
		Trends            model.TrendBundle        `json:"pinterest_trends"`
		Dataset           model.DatasetBundle      `json:"apify_trends"`
		Competitors       []model.CompetitorBundle `json:"competitors"`
		Instructions      []string                 `json:"instructions"`
		OutputSchema      json.RawMessage          `json:"output_schema"`
	}{
		Context:           ctx,
		InfluencerProfile: influencerProfile{ProfileBundle: s.Profile, Signals: summary},
		UserPerformance:   s.UserStats,
		Hashtags:          s.Hashtags,
		Trends:            s.Trends,
		Dataset:           s.Dataset,
		Competitors:       s.Competitors,
		Instructions: []string{
			ruleJSONOnly,
			ruleBilingual,
			"Use only data provided. Do not invent metrics or sources.",
			ruleMissing,
			"Urgency score: 1 (low) to 5 (high). Fit score: 1 to 10.",
			ruleCounts,
			"Platform must be one of: Instagram, Pinterest, Both.",
		},
		OutputSchema: contract.OutputSchema(),
	})
}

// Repair 修复提示词：要求模型把 badResponse 改成符合输出结构的 JSON
func Repair(badResponse string) string {
	return dump(struct {
		Task         string          `json:"task"`
		Rules        []string        `json:"rules"`
		OutputSchema json.RawMessage `json:"output_schema"`
		BadResponse  string          `json:"bad_response"`
	}{
		Task: "Fix the JSON to match the required schema exactly.",
		Rules: []string{
			ruleJSONOnly,
			ruleBilingual,
			"Use only the provided data; do not invent metrics.",
			ruleMissing,
			ruleCounts,
		},
		OutputSchema: contract.OutputSchema(),
		BadResponse:  badResponse,
	})
}

// dump 两空格缩进，保留非 ASCII 字符和 HTML 字符原样
func dump(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		panic(fmt.Sprintf("prompt: encode: %v", err))
	}
	return strings.TrimRight(buf.String(), "\n")
}
