package engine

import "time"

// Stage 流水线阶段
type Stage string

const (
	StageIntent   Stage = "intent"
	StageData     Stage = "data"
	StageSummary  Stage = "summary"
	StageStrategy Stage = "strategy"
	StageValidate Stage = "validate"
	StageRender   Stage = "render"
)

// Stages 固定的执行顺序
var Stages = []Stage{StageIntent, StageData, StageSummary, StageStrategy, StageValidate, StageRender}

// Outcome 阶段结果
type Outcome int

const (
	// OK 阶段正常完成
	OK Outcome = iota
	// Degraded 阶段使用了兜底值，流水线继续
	Degraded
	// Failed 阶段失败，流水线终止
	Failed
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Degraded:
		return "degraded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// StageResult 单个阶段的执行结果
type StageResult struct {
	Stage    Stage
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

func ok() StageResult { return StageResult{Outcome: OK} }

func degraded(err error) StageResult { return StageResult{Outcome: Degraded, Err: err} }

func failed(err error) StageResult { return StageResult{Outcome: Failed, Err: err} }
