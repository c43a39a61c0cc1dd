// Package render 把校验后的策略报告排版成双语纯文本。
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// 报告段落标题，按输出顺序排列
const (
	SectionTrends   = "TOP 3 TRENDS"
	SectionIdeas    = "5 CONTENT IDEAS"
	SectionQuickWin = "QUICK WIN"
	SectionAvoid    = "AVOID"
	SectionInsights = "INSIGHTS"
)

// Sections 段落标题顺序
var Sections = []string{SectionTrends, SectionIdeas, SectionQuickWin, SectionAvoid, SectionInsights}

const (
	dash        = "-"
	missingName = "data tidak tersedia"
	missingEN   = "data not available"
	maxEvidence = 2
)

// Render 排版报告。段落之间以空行分隔，便于投递时按段切分。
func Render(r *model.StrategyReport) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	lines = append(lines, SectionTrends)
	for i, t := range head(r.TopTrends, 3) {
		add("%d. ID: %s", i+1, t.NameID.Or(missingName))
		add("   EN: %s", t.NameEN.Or(missingEN))
		add("   Platform: %s", t.Platform.Or(dash))
		add("   Urgency: %s/5 | ID: %s; EN: %s", t.UrgencyScore, t.UrgencyLabelID.Or(dash), t.UrgencyLabelEN.Or(dash))
		add("   Fit Score: %s/10", t.FitScore)
		for _, ev := range head(t.Evidence, maxEvidence) {
			add("   Evidence: %s: %s=%s", ev.Source.Or(dash), ev.Metric.Or(dash), ev.Value)
		}
		add("   Angle ID: %s", t.ContentAngleID.Or(dash))
		add("   Angle EN: %s", t.ContentAngleEN.Or(dash))
	}

	lines = append(lines, "", SectionIdeas)
	for i, idea := range head(r.ContentIdeas, 5) {
		add("%d. ID: %s", i+1, idea.TitleID.Or(dash))
		add("   EN: %s", idea.TitleEN.Or(dash))
		add("   Platform: %s", idea.Platform.Or(dash))
		add("   Hook ID: %s", idea.HookID.Or(dash))
		add("   Hook EN: %s", idea.HookEN.Or(dash))
		add("   Concept ID: %s", idea.ConceptID.Or(dash))
		add("   Concept EN: %s", idea.ConceptEN.Or(dash))
		add("   Effort: %s", idea.Effort.Or(dash))
		if len(idea.Hashtags) > 0 {
			add("   Hashtags: %s", strings.Join(model.Texts(idea.Hashtags), " "))
		}
	}

	q := r.QuickWin
	lines = append(lines, "", SectionQuickWin)
	add("ID: %s", q.IdeaID.Or(dash))
	add("EN: %s", q.IdeaEN.Or(dash))
	add("Why ID: %s", q.WhyID.Or(dash))
	add("Why EN: %s", q.WhyEN.Or(dash))
	add("Steps ID: %s", q.StepsID.Or(dash))
	add("Steps EN: %s", q.StepsEN.Or(dash))

	lines = append(lines, "", SectionAvoid)
	for _, item := range r.Avoid {
		add("ID: %s", item.NameID.Or(dash))
		add("EN: %s", item.NameEN.Or(dash))
		add("Reason ID: %s", item.ReasonID.Or(dash))
		add("Reason EN: %s", item.ReasonEN.Or(dash))
	}

	in := r.Insights
	lines = append(lines, "", SectionInsights)
	add("Pattern ID: %s", in.PatternID.Or(dash))
	add("Pattern EN: %s", in.PatternEN.Or(dash))
	add("Best Posting Hint ID: %s", in.BestPostingHintID.Or(dash))
	add("Best Posting Hint EN: %s", in.BestPostingHintEN.Or(dash))

	return strings.Join(lines, "\n")
}

// Header 每日报告的抬头，时间按 loc 所在时区显示
func Header(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return fmt.Sprintf("DAILY TREND REPORT\nDate: %s\nTime: %s WIB\n\n",
		local.Format("Monday, January 02, 2006"),
		local.Format("15:04"),
	)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
