package engine

import (
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// State 一次运行的全部中间结果。每个字段只由对应阶段写入，运行结束后丢弃。
type State struct {
	RunID       string
	UserMessage string

	// Intent 意图阶段
	Intent model.Intent

	// 数据阶段
	Profile     model.ProfileBundle
	UserStats   model.UserStatsBundle
	Hashtags    []model.HashtagBundle
	Trends      model.TrendBundle
	Dataset     model.DatasetBundle
	Competitors []model.CompetitorBundle

	// Summary 摘要阶段
	Summary model.SignalsSummary

	// RawAnalysis 策略阶段的模型原始输出
	RawAnalysis string

	// Report 校验通过的报告，nil 表示校验与修复都失败
	Report   *model.StrategyReport
	Repaired bool

	RenderedText string

	// Stage 当前所处阶段，Trace 记录已完成阶段的结果
	Stage Stage
	Trace []StageResult
}

// Bundles 按固定顺序返回数据阶段采集到的证据包
func (s *State) Bundles() []model.Bundle {
	bundles := make([]model.Bundle, 0, 4+len(s.Hashtags)+len(s.Competitors))
	bundles = append(bundles, s.Profile, s.UserStats)
	for _, h := range s.Hashtags {
		bundles = append(bundles, h)
	}
	bundles = append(bundles, s.Trends, s.Dataset)
	for _, c := range s.Competitors {
		bundles = append(bundles, c)
	}
	return bundles
}

// Outcome 返回指定阶段的结果，阶段未执行时 ok 为 false
func (s *State) Outcome(stage Stage) (StageResult, bool) {
	for _, r := range s.Trace {
		if r.Stage == stage {
			return r, true
		}
	}
	return StageResult{}, false
}
