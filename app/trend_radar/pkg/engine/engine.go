// Package engine 驱动一次报告生成：意图、数据、摘要、策略、校验修复、渲染六个阶段按固定顺序执行。
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/prompt"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/render"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/validator"
)

// NoDataText 没有任何可展示内容时的回复
const NoDataText = "Maaf, data tidak tersedia."

// Generator 文本生成，由 router.Router 实现
type Generator interface {
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// Signals 数据阶段的采集来源，由 signals.Collector 实现。
// 每个方法自行兜底，失败写入证据包的说明字段。
type Signals interface {
	Profile(ctx context.Context) model.ProfileBundle
	UserStats(ctx context.Context) model.UserStatsBundle
	Hashtags(ctx context.Context) []model.HashtagBundle
	Trends(ctx context.Context) model.TrendBundle
	Dataset(ctx context.Context) model.DatasetBundle
	Competitors(ctx context.Context) []model.CompetitorBundle
}

// Engine 核心处理引擎
type Engine struct {
	gen       Generator
	signals   Signals
	validator *validator.Validator
	log       *logrus.Entry
}

// NewEngine 创建引擎实例，v 为 nil 时使用默认（宽松）校验
func NewEngine(gen Generator, signals Signals, v *validator.Validator, log *logrus.Entry) *Engine {
	if v == nil {
		v = validator.New()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{gen: gen, signals: signals, validator: v, log: log}
}

type stageFunc func(ctx context.Context, st *State, log *logrus.Entry) StageResult

func (e *Engine) stage(s Stage) stageFunc {
	switch s {
	case StageIntent:
		return e.intent
	case StageData:
		return e.data
	case StageSummary:
		return e.summary
	case StageStrategy:
		return e.strategy
	case StageValidate:
		return e.validate
	case StageRender:
		return e.render
	}
	panic(fmt.Sprintf("engine: unknown stage %q", s))
}

// Run 执行一次完整的流水线。只有策略阶段生成失败时返回错误，其余失败都降级处理；
// 返回的 State 总是非 nil，便于调用方查看已完成的阶段。
func (e *Engine) Run(ctx context.Context, userMessage string) (*State, error) {
	st := &State{
		RunID:       uuid.NewString(),
		UserMessage: userMessage,
	}
	log := e.log.WithField("run_id", st.RunID)
	log.Infof("开始生成报告: %q", userMessage)

	for _, s := range Stages {
		st.Stage = s
		start := time.Now()
		res := e.stage(s)(ctx, st, log)
		res.Stage = s
		res.Duration = time.Since(start)
		st.Trace = append(st.Trace, res)

		entry := log.WithField("stage", s).WithField("outcome", res.Outcome)
		switch res.Outcome {
		case OK:
			entry.Debugf("阶段完成，耗时 %v", res.Duration)
		case Degraded:
			entry.Warnf("阶段降级: %v", res.Err)
		case Failed:
			entry.Errorf("阶段失败: %v", res.Err)
			return st, fmt.Errorf("%s stage: %w", s, res.Err)
		}
	}

	log.Infof("报告生成完成，结构化报告: %v，修复: %v", st.Report != nil, st.Repaired)
	return st, nil
}

func (e *Engine) intent(ctx context.Context, st *State, log *logrus.Entry) StageResult {
	st.Intent = model.DefaultIntent()

	raw, err := e.gen.Generate(ctx, prompt.Intent(st.UserMessage), prompt.SystemPrompt)
	if err != nil {
		return degraded(err)
	}
	var intent model.Intent
	if err := json.Unmarshal([]byte(validator.StripFence(raw)), &intent); err != nil {
		return degraded(&validator.ParseFailure{Err: err})
	}
	if intent.IntentID == "" && intent.IntentEN == "" {
		return degraded(errors.New("intent response has no intent"))
	}
	if intent.Constraints == nil {
		intent.Constraints = []string{}
	}
	st.Intent = intent
	log.Debugf("意图: %s / %s，约束: %v", intent.IntentID, intent.IntentEN, intent.Constraints)
	return ok()
}

func (e *Engine) data(ctx context.Context, st *State, log *logrus.Entry) StageResult {
	st.Profile = e.signals.Profile(ctx)
	st.UserStats = e.signals.UserStats(ctx)
	st.Hashtags = e.signals.Hashtags(ctx)
	st.Trends = e.signals.Trends(ctx)
	st.Dataset = e.signals.Dataset(ctx)
	st.Competitors = e.signals.Competitors(ctx)

	var notes []string
	for _, b := range st.Bundles() {
		if n, noted := noteOf(b); noted {
			notes = append(notes, fmt.Sprintf("%s: %s", b.Source(), n))
		}
	}
	log.Infof("数据采集完成: %d 个话题标签，%d 个趋势词，%d 个竞品，%d 条说明",
		len(st.Hashtags), len(st.Trends.Trends), len(st.Competitors), len(notes))
	if len(notes) > 0 {
		return degraded(fmt.Errorf("collector notes: %v", notes))
	}
	return ok()
}

// noteOf 取出证据包的说明
func noteOf(b model.Bundle) (string, bool) {
	var n model.Note
	switch b := b.(type) {
	case model.ProfileBundle:
		n = b.Note
	case model.UserStatsBundle:
		n = b.Note
	case model.HashtagBundle:
		n = b.Note
	case model.TrendBundle:
		n = b.Note
	case model.DatasetBundle:
		n = b.Note
	case model.CompetitorBundle:
		n = b.Note
	default:
		panic(fmt.Sprintf("engine: unhandled bundle %T", b))
	}
	if !n.Noted() {
		return "", false
	}
	if n.Error != "" {
		return n.Note + " (" + n.Error + ")", true
	}
	return n.Note, true
}

func (e *Engine) summary(ctx context.Context, st *State, _ *logrus.Entry) StageResult {
	raw, err := e.gen.Generate(ctx, prompt.Summary(st.Bundles()), prompt.SystemPrompt)
	if err != nil {
		st.Summary = model.FailedSummary()
		return degraded(err)
	}
	var summary model.SignalsSummary
	if err := json.Unmarshal([]byte(validator.StripFence(raw)), &summary); err != nil {
		st.Summary = model.FailedSummary()
		return degraded(&validator.ParseFailure{Err: err})
	}
	st.Summary = summary
	return ok()
}

func (e *Engine) strategy(ctx context.Context, st *State, log *logrus.Entry) StageResult {
	p := prompt.Strategy(st.UserMessage, st.Intent, st.Summary, st.Bundles())
	log.Debugf("策略提示词长度: %d", len(p))

	raw, err := e.gen.Generate(ctx, p, prompt.SystemPrompt)
	if err != nil {
		return failed(err)
	}
	st.RawAnalysis = raw
	return ok()
}

func (e *Engine) validate(ctx context.Context, st *State, log *logrus.Entry) StageResult {
	report, err := e.decode(st.RawAnalysis)
	if err == nil {
		st.Report = report
		return ok()
	}
	log.Warnf("策略结果不合格，尝试修复一次: %v", err)

	repaired, genErr := e.gen.Generate(ctx, prompt.Repair(st.RawAnalysis), prompt.SystemPrompt)
	if genErr != nil {
		return degraded(fmt.Errorf("repair: %w", genErr))
	}
	report, err = e.decode(repaired)
	if err != nil {
		return degraded(fmt.Errorf("repair: %w", err))
	}
	st.Report = report
	st.Repaired = true
	return ok()
}

func (e *Engine) decode(raw string) (*model.StrategyReport, error) {
	candidate, err := validator.Parse(raw)
	if err != nil {
		return nil, err
	}
	return e.validator.Decode(candidate)
}

func (e *Engine) render(_ context.Context, st *State, _ *logrus.Entry) StageResult {
	switch {
	case st.Report != nil:
		st.RenderedText = render.Render(st.Report)
		return ok()
	case st.RawAnalysis != "":
		st.RenderedText = st.RawAnalysis
	default:
		st.RenderedText = NoDataText
	}
	return degraded(errors.New("no validated report, rendering fallback text"))
}
