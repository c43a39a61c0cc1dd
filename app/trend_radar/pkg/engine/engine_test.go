package engine

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/render"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/router"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/validator"
)

type reply struct {
	text string
	err  error
}

// scriptedGenerator 按提示词类型返回预设结果，并记录调用次数
type scriptedGenerator struct {
	mu       sync.Mutex
	intent   reply
	summary  reply
	strategy reply
	repair   reply
	calls    map[string]int
	prompts  map[string]string
}

func (g *scriptedGenerator) Generate(_ context.Context, p, system string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.calls == nil {
		g.calls = map[string]int{}
		g.prompts = map[string]string{}
	}
	kind := "strategy"
	switch {
	case strings.Contains(p, "Extract intent and constraints"):
		kind = "intent"
	case strings.Contains(p, "Summarize signals"):
		kind = "summary"
	case strings.Contains(p, "Fix the JSON"):
		kind = "repair"
	}
	g.calls[kind]++
	g.prompts[kind] = p

	r := map[string]reply{
		"intent":   g.intent,
		"summary":  g.summary,
		"strategy": g.strategy,
		"repair":   g.repair,
	}[kind]
	return r.text, r.err
}

type fakeSignals struct {
	noted bool
}

func (f fakeSignals) Profile(context.Context) model.ProfileBundle {
	return model.ProfileBundle{Username: "dian"}
}

func (f fakeSignals) UserStats(context.Context) model.UserStatsBundle {
	if f.noted {
		return model.UserStatsBundle{Note: model.Note{Note: "Instagram client not configured"}}
	}
	return model.UserStatsBundle{Count: 3}
}

func (f fakeSignals) Hashtags(context.Context) []model.HashtagBundle {
	return []model.HashtagBundle{{Hashtag: "ootd"}}
}

func (f fakeSignals) Trends(context.Context) model.TrendBundle {
	return model.TrendBundle{Trends: []model.TrendKeyword{{Keyword: "kebaya"}}}
}

func (f fakeSignals) Dataset(context.Context) model.DatasetBundle {
	return model.DatasetBundle{Items: []map[string]any{}}
}

func (f fakeSignals) Competitors(context.Context) []model.CompetitorBundle { return nil }

func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../validator/testdata/valid_report.json")
	require.NoError(t, err)
	return string(data)
}

func withoutKey(t *testing.T, raw, key string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	delete(m, key)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}

func newEngine(g Generator, s Signals) *Engine {
	return NewEngine(g, s, nil, logger.Discard())
}

func TestRun_HappyPath(t *testing.T) {
	g := &scriptedGenerator{
		intent:   reply{text: `{"intent_id": "ide reels", "intent_en": "reels ideas", "constraints": ["reels"]}`},
		summary:  reply{text: "```json\n{\"audience_en\": \"Young women\"}\n```"},
		strategy: reply{text: "```json\n" + fixture(t) + "\n```"},
	}
	st, err := newEngine(g, fakeSignals{}).Run(context.Background(), "ide reels hari ini")
	require.NoError(t, err)

	assert.NotEmpty(t, st.RunID)
	assert.Equal(t, "reels ideas", st.Intent.IntentEN)
	assert.Equal(t, "Young women", st.Summary.AudienceEN.String())
	require.NotNil(t, st.Report)
	assert.False(t, st.Repaired)
	assert.Equal(t, render.Render(st.Report), st.RenderedText)
	assert.Zero(t, g.calls["repair"])
	assert.Equal(t, StageRender, st.Stage)

	require.Len(t, st.Trace, len(Stages))
	for i, res := range st.Trace {
		assert.Equal(t, Stages[i], res.Stage)
		assert.Equal(t, OK, res.Outcome, "stage %s", res.Stage)
	}

	// 约束随策略提示词一起发送
	assert.Contains(t, g.prompts["strategy"], `"constraints": [`)
	assert.Contains(t, g.prompts["strategy"], `"audience_en": "Young women"`)
}

func TestRun_RepairsMissingInsightsOnce(t *testing.T) {
	full := fixture(t)
	g := &scriptedGenerator{
		intent:   reply{err: errors.New("boom")},
		summary:  reply{err: errors.New("boom")},
		strategy: reply{text: withoutKey(t, full, "insights")},
		repair:   reply{text: full},
	}
	st, err := newEngine(g, fakeSignals{}).Run(context.Background(), "Daily trend report")
	require.NoError(t, err)

	assert.Equal(t, 1, g.calls["repair"])
	require.NotNil(t, st.Report)
	assert.True(t, st.Repaired)
	assert.Contains(t, g.prompts["repair"], `\"top_trends\"`, "bad response is embedded in the repair prompt")

	last := -1
	for _, h := range render.Sections {
		idx := strings.Index(st.RenderedText, h)
		require.GreaterOrEqual(t, idx, 0, h)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestRun_RepairFailsFallsBackToRaw(t *testing.T) {
	bad := withoutKey(t, fixture(t), "avoid")
	g := &scriptedGenerator{
		strategy: reply{text: bad},
		repair:   reply{text: "still not json"},
	}
	st, err := newEngine(g, fakeSignals{}).Run(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, 1, g.calls["repair"])
	assert.Nil(t, st.Report)
	assert.Equal(t, bad, st.RenderedText)

	res, ok := st.Outcome(StageValidate)
	require.True(t, ok)
	assert.Equal(t, Degraded, res.Outcome)
	var pf *validator.ParseFailure
	assert.True(t, errors.As(res.Err, &pf))
}

func TestRun_RepairGenerationFails(t *testing.T) {
	g := &scriptedGenerator{
		strategy: reply{text: `{"top_trends": []}`},
		repair:   reply{err: &router.GenerationFailure{Model: "m", Err: errors.New("timeout")}},
	}
	st, err := newEngine(g, fakeSignals{}).Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Nil(t, st.Report)
	assert.Equal(t, `{"top_trends": []}`, st.RenderedText)
}

func TestRun_EmptyAnalysisRendersNoData(t *testing.T) {
	g := &scriptedGenerator{repair: reply{err: errors.New("down")}}
	st, err := newEngine(g, fakeSignals{}).Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, NoDataText, st.RenderedText)
}

func TestRun_StrategyFailureIsFatal(t *testing.T) {
	g := &scriptedGenerator{
		strategy: reply{err: &router.GenerationFailure{Model: "fallback", Err: errors.New("503")}},
	}
	st, err := newEngine(g, fakeSignals{}).Run(context.Background(), "hi")
	require.Error(t, err)

	var gf *router.GenerationFailure
	require.True(t, errors.As(err, &gf))
	assert.Equal(t, "fallback", gf.Model)

	require.NotNil(t, st)
	assert.Equal(t, StageStrategy, st.Stage)
	assert.Len(t, st.Trace, 4)
	assert.Empty(t, st.RenderedText)
	assert.Zero(t, g.calls["repair"])
}

func TestRun_IntentAndSummaryDegrade(t *testing.T) {
	g := &scriptedGenerator{
		intent:   reply{text: "not json"},
		summary:  reply{err: errors.New("boom")},
		strategy: reply{text: fixture(t)},
	}
	st, err := newEngine(g, fakeSignals{noted: true}).Run(context.Background(), "hi")
	require.NoError(t, err)

	if diff := cmp.Diff(model.DefaultIntent(), st.Intent); diff != "" {
		t.Errorf("intent mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.FailedSummary(), st.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, g.prompts["strategy"], `"note": "summary failed"`)

	for _, s := range []Stage{StageIntent, StageData, StageSummary} {
		res, ok := st.Outcome(s)
		require.True(t, ok)
		assert.Equal(t, Degraded, res.Outcome, "stage %s", s)
	}
	res, _ := st.Outcome(StageData)
	assert.Contains(t, res.Err.Error(), "Instagram client not configured")
}

func TestState_Bundles(t *testing.T) {
	st := &State{
		Hashtags:    []model.HashtagBundle{{Hashtag: "a"}, {Hashtag: "b"}},
		Competitors: []model.CompetitorBundle{{Username: "c"}},
	}
	var sources []model.Source
	for _, b := range st.Bundles() {
		sources = append(sources, b.Source())
	}
	assert.Equal(t, []model.Source{
		model.SourceProfile, model.SourceUserStats,
		model.SourceHashtag, model.SourceHashtag,
		model.SourceTrend, model.SourceDataset,
		model.SourceCompetitor,
	}, sources)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "ok", OK.String())
	assert.Equal(t, "degraded", Degraded.String())
	assert.Equal(t, "failed", Failed.String())
}
