package model

// StrategyReport 内容策略报告
type StrategyReport struct {
	TopTrends    []TopTrend    `json:"top_trends"`
	ContentIdeas []ContentIdea `json:"content_ideas"`
	QuickWin     QuickWin      `json:"quick_win"`
	Avoid        []AvoidItem   `json:"avoid"`
	Insights     Insights      `json:"insights"`
}

// TopTrend 热点趋势
type TopTrend struct {
	NameID         Text       `json:"name_id"`
	NameEN         Text       `json:"name_en"`
	Platform       Text       `json:"platform"` // Instagram | Pinterest | Both
	UrgencyScore   Score      `json:"urgency_score"`
	UrgencyLabelID Text       `json:"urgency_label_id"`
	UrgencyLabelEN Text       `json:"urgency_label_en"`
	FitScore       Score      `json:"fit_score"`
	Evidence       []Evidence `json:"evidence"`
	ContentAngleID Text       `json:"content_angle_id"`
	ContentAngleEN Text       `json:"content_angle_en"`
}

// Evidence 趋势的数据依据
type Evidence struct {
	Source Text `json:"source"`
	Metric Text `json:"metric"`
	Value  Text `json:"value"`
}

// ContentIdea 内容创意
type ContentIdea struct {
	TitleID   Text   `json:"title_id"`
	TitleEN   Text   `json:"title_en"`
	Platform  Text   `json:"platform"`
	HookID    Text   `json:"hook_id"`
	HookEN    Text   `json:"hook_en"`
	ConceptID Text   `json:"concept_id"`
	ConceptEN Text   `json:"concept_en"`
	Effort    Text   `json:"effort"` // Quick | Medium | Involved
	Hashtags  []Text `json:"hashtags"`
}

// QuickWin 今日可立即执行的一条建议
type QuickWin struct {
	IdeaID  Text `json:"idea_id"`
	IdeaEN  Text `json:"idea_en"`
	WhyID   Text `json:"why_id"`
	WhyEN   Text `json:"why_en"`
	StepsID Text `json:"steps_id"`
	StepsEN Text `json:"steps_en"`
}

// AvoidItem 应当避免的内容
type AvoidItem struct {
	NameID   Text `json:"name_id"`
	NameEN   Text `json:"name_en"`
	ReasonID Text `json:"reason_id"`
	ReasonEN Text `json:"reason_en"`
}

// Insights 规律洞察
type Insights struct {
	PatternID         Text `json:"pattern_id"`
	PatternEN         Text `json:"pattern_en"`
	BestPostingHintID Text `json:"best_posting_hint_id"`
	BestPostingHintEN Text `json:"best_posting_hint_en"`
}

// Intent 用户意图
type Intent struct {
	IntentID    string   `json:"intent_id"`
	IntentEN    string   `json:"intent_en"`
	Constraints []string `json:"constraints"`
}

// DefaultIntent 意图抽取失败时的固定意图
func DefaultIntent() Intent {
	return Intent{
		IntentID:    "rekomendasi konten hari ini",
		IntentEN:    "content recommendations for today",
		Constraints: []string{},
	}
}

// SignalsSummary 双语信号摘要
type SignalsSummary struct {
	Note             string `json:"note,omitempty"`
	AudienceID       Text   `json:"audience_id,omitempty"`
	AudienceEN       Text   `json:"audience_en,omitempty"`
	TopThemesID      []Text `json:"top_themes_id,omitempty"`
	TopThemesEN      []Text `json:"top_themes_en,omitempty"`
	ContentFormatsID []Text `json:"content_formats_id,omitempty"`
	ContentFormatsEN []Text `json:"content_formats_en,omitempty"`
	RiskNotesID      []Text `json:"risk_notes_id,omitempty"`
	RiskNotesEN      []Text `json:"risk_notes_en,omitempty"`
}

// FailedSummary 摘要生成失败时的占位
func FailedSummary() SignalsSummary {
	return SignalsSummary{Note: "summary failed"}
}
