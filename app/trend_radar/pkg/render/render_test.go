package render

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

func loadReport(t *testing.T) *model.StrategyReport {
	t.Helper()
	data, err := os.ReadFile("../validator/testdata/valid_report.json")
	require.NoError(t, err)
	var r model.StrategyReport
	require.NoError(t, json.Unmarshal(data, &r))
	return &r
}

func TestRender_SectionsInOrder(t *testing.T) {
	out := Render(loadReport(t))

	last := -1
	for _, s := range Sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "section %s missing", s)
		assert.Greater(t, idx, last, "section %s out of order", s)
		last = idx
	}
	// 段落之间有空行
	assert.Contains(t, out, "\n\n5 CONTENT IDEAS\n")
	assert.Contains(t, out, "\n\nINSIGHTS\n")
}

func TestRender_TrendLines(t *testing.T) {
	out := Render(loadReport(t))

	assert.Contains(t, out, "1. ID: Layering modest\n   EN: Modest layering\n   Platform: Instagram\n")
	assert.Contains(t, out, "   Urgency: 5/5 | ID: Segera; EN: Post today\n   Fit Score: 9/10\n")
	assert.Contains(t, out, "   Evidence: instagram_hashtags: median_likes=1200\n")
	assert.Contains(t, out, "   Evidence: pinterest_trends: pct_growth_wow=45%\n")
	// 只展示前两条证据
	assert.NotContains(t, out, "mentions=18")
	// null 分数显示占位符
	assert.Contains(t, out, "   Fit Score: -/10\n")
	assert.Contains(t, out, "   Angle EN: data not available")
}

func TestRender_IdeasAndHashtags(t *testing.T) {
	out := Render(loadReport(t))

	assert.Contains(t, out, "5. ID: Ide 5\n")
	assert.Contains(t, out, "   Hashtags: #ootd #modestfashion\n")
	// 空 hashtags 不输出该行
	idea2 := out[strings.Index(out, "2. ID: Ide 2"):strings.Index(out, "3. ID: Ide 3")]
	assert.NotContains(t, idea2, "Hashtags")
}

func TestRender_MissingFieldsUsePlaceholders(t *testing.T) {
	r := &model.StrategyReport{
		TopTrends: []model.TopTrend{{}},
		Avoid:     []model.AvoidItem{{NameID: "X"}},
	}
	out := Render(r)

	assert.Contains(t, out, "1. ID: data tidak tersedia\n   EN: data not available\n   Platform: -\n")
	assert.Contains(t, out, "   Urgency: -/5 | ID: -; EN: -\n")
	assert.Contains(t, out, "QUICK WIN\nID: -\nEN: -\n")
	assert.Contains(t, out, "AVOID\nID: X\nEN: -\nReason ID: -\nReason EN: -\n")
	assert.True(t, strings.HasSuffix(out, "Best Posting Hint EN: -"))
}

func TestHeader(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2024, 3, 4, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "DAILY TREND REPORT\nDate: Monday, March 04, 2024\nTime: 08:30 WIB\n\n", Header(now, loc))
}
