// Package contract 定义策略报告的结构契约：校验器按它检查模型输出，
// 策略与修复提示词把它作为 output_schema 原样发给模型。
package contract

import "encoding/json"

// 报告条目数量要求
const (
	TopTrendCount    = 3
	ContentIdeaCount = 5
)

// 顶层字段
const (
	KeyTopTrends    = "top_trends"
	KeyContentIdeas = "content_ideas"
	KeyQuickWin     = "quick_win"
	KeyAvoid        = "avoid"
	KeyInsights     = "insights"
)

// TopLevelKeys 顶层字段，按校验顺序排列
var TopLevelKeys = []string{KeyTopTrends, KeyContentIdeas, KeyQuickWin, KeyAvoid, KeyInsights}

// TopTrendFields 每个 top_trends 条目的必填字段
var TopTrendFields = []string{
	"name_id",
	"name_en",
	"platform",
	"urgency_score",
	"urgency_label_id",
	"urgency_label_en",
	"fit_score",
	"evidence",
	"content_angle_id",
	"content_angle_en",
}

// ContentIdeaFields 每个 content_ideas 条目的必填字段
var ContentIdeaFields = []string{
	"title_id",
	"title_en",
	"platform",
	"hook_id",
	"hook_en",
	"concept_id",
	"concept_en",
	"effort",
	"hashtags",
}

// QuickWinFields quick_win 的必填字段
var QuickWinFields = []string{"idea_id", "idea_en", "why_id", "why_en", "steps_id", "steps_en"}

// AvoidFields 每个 avoid 条目的必填字段
var AvoidFields = []string{"name_id", "name_en", "reason_id", "reason_en"}

// InsightsFields insights 的必填字段
var InsightsFields = []string{"pattern_id", "pattern_en", "best_posting_hint_id", "best_posting_hint_en"}

// 枚举与取值范围（仅在严格校验模式下检查）
var (
	Platforms = []string{"Instagram", "Pinterest", "Both"}
	Efforts   = []string{"Quick", "Medium", "Involved"}
)

const (
	UrgencyMin, UrgencyMax = 1, 5
	FitMin, FitMax         = 1, 10
)

// outputSchema 发给模型的输出结构，字段顺序即展示顺序
const outputSchema = `{
  "top_trends": [
    {
      "name_id": "string",
      "name_en": "string",
      "platform": "Instagram | Pinterest | Both",
      "urgency_score": 1,
      "urgency_label_id": "string",
      "urgency_label_en": "string",
      "fit_score": 1,
      "evidence": [{"source": "string", "metric": "string", "value": "string"}],
      "content_angle_id": "string",
      "content_angle_en": "string"
    }
  ],
  "content_ideas": [
    {
      "title_id": "string",
      "title_en": "string",
      "platform": "string",
      "hook_id": "string",
      "hook_en": "string",
      "concept_id": "string",
      "concept_en": "string",
      "effort": "Quick | Medium | Involved",
      "hashtags": ["string"]
    }
  ],
  "quick_win": {
    "idea_id": "string",
    "idea_en": "string",
    "why_id": "string",
    "why_en": "string",
    "steps_id": "string",
    "steps_en": "string"
  },
  "avoid": [
    {
      "name_id": "string",
      "name_en": "string",
      "reason_id": "string",
      "reason_en": "string"
    }
  ],
  "insights": {
    "pattern_id": "string",
    "pattern_en": "string",
    "best_posting_hint_id": "string",
    "best_posting_hint_en": "string"
  }
}`

// OutputSchema 返回 output_schema 的 JSON
func OutputSchema() json.RawMessage {
	return json.RawMessage(outputSchema)
}
