// Package validator 按 contract 检查模型返回的策略报告。
package validator

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/contract"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// SchemaViolation 报告结构不完整或形状错误，只携带发现的第一个问题
type SchemaViolation struct {
	Field  string
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation: %s: %s", e.Field, e.Reason)
}

// ParseFailure 模型输出不是合法 JSON 对象
type ParseFailure struct {
	Err error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse failure: %v", e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }

// Validator 报告校验器
type Validator struct {
	strict bool
}

// Option 校验选项
type Option func(*Validator)

// WithStrict 额外检查分数范围和 platform / effort 枚举
func WithStrict(strict bool) Option {
	return func(v *Validator) { v.strict = strict }
}

// New 创建校验器，默认宽松模式
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate 宽松模式下的结构校验
func Validate(candidate map[string]any) error {
	return New().Validate(candidate)
}

// Validate 按固定顺序检查，遇到第一个问题即返回 *SchemaViolation
func (v *Validator) Validate(candidate map[string]any) error {
	for _, key := range contract.TopLevelKeys {
		if _, ok := candidate[key]; !ok {
			return missing(key)
		}
	}

	trends, err := listOf(candidate, contract.KeyTopTrends, contract.TopTrendCount)
	if err != nil {
		return err
	}
	ideas, err := listOf(candidate, contract.KeyContentIdeas, contract.ContentIdeaCount)
	if err != nil {
		return err
	}

	for i, item := range trends {
		if err := requireFields(item, fmt.Sprintf("%s[%d]", contract.KeyTopTrends, i), contract.TopTrendFields); err != nil {
			return err
		}
	}
	for i, item := range ideas {
		if err := requireFields(item, fmt.Sprintf("%s[%d]", contract.KeyContentIdeas, i), contract.ContentIdeaFields); err != nil {
			return err
		}
	}

	avoid, ok := candidate[contract.KeyAvoid].([]any)
	if !ok {
		return &SchemaViolation{Field: contract.KeyAvoid, Reason: "must be a list"}
	}

	if err := requireFields(candidate[contract.KeyQuickWin], contract.KeyQuickWin, contract.QuickWinFields); err != nil {
		return err
	}
	for i, item := range avoid {
		if err := requireFields(item, fmt.Sprintf("%s[%d]", contract.KeyAvoid, i), contract.AvoidFields); err != nil {
			return err
		}
	}
	if err := requireFields(candidate[contract.KeyInsights], contract.KeyInsights, contract.InsightsFields); err != nil {
		return err
	}

	if v.strict {
		return checkRanges(trends, ideas)
	}
	return nil
}

// Decode 校验通过后转换成类型化报告
func (v *Validator) Decode(candidate map[string]any) (*model.StrategyReport, error) {
	if err := v.Validate(candidate); err != nil {
		return nil, err
	}
	data, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("re-encode report: %w", err)
	}
	var report model.StrategyReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &ParseFailure{Err: err}
	}
	return &report, nil
}

// Parse 去掉 markdown 代码块标记后解析为 JSON 对象
func Parse(raw string) (map[string]any, error) {
	content := StripFence(raw)
	if content == "" {
		return nil, &ParseFailure{Err: fmt.Errorf("empty response")}
	}
	var candidate map[string]any
	if err := json.Unmarshal([]byte(content), &candidate); err != nil {
		return nil, &ParseFailure{Err: err}
	}
	if candidate == nil {
		return nil, &ParseFailure{Err: fmt.Errorf("response is not a JSON object")}
	}
	return candidate, nil
}

// StripFence 清理模型输出外层的 ```json 包裹
func StripFence(raw string) string {
	content := strings.TrimSpace(raw)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func missing(field string) error {
	return &SchemaViolation{Field: field, Reason: "missing"}
}

func listOf(candidate map[string]any, key string, want int) ([]any, error) {
	list, ok := candidate[key].([]any)
	if !ok {
		return nil, &SchemaViolation{Field: key, Reason: "must be a list"}
	}
	if len(list) != want {
		return nil, &SchemaViolation{Field: key, Reason: fmt.Sprintf("must contain exactly %d items, got %d", want, len(list))}
	}
	return list, nil
}

func requireFields(item any, path string, fields []string) error {
	obj, ok := item.(map[string]any)
	if !ok {
		return &SchemaViolation{Field: path, Reason: "must be an object"}
	}
	for _, f := range fields {
		if _, ok := obj[f]; !ok {
			return missing(path + "." + f)
		}
	}
	return nil
}

func checkRanges(trends, ideas []any) error {
	for i, item := range trends {
		obj := item.(map[string]any)
		path := fmt.Sprintf("%s[%d]", contract.KeyTopTrends, i)
		if err := checkScore(obj["urgency_score"], path+".urgency_score", contract.UrgencyMin, contract.UrgencyMax); err != nil {
			return err
		}
		if err := checkScore(obj["fit_score"], path+".fit_score", contract.FitMin, contract.FitMax); err != nil {
			return err
		}
		if err := checkEnum(obj["platform"], path+".platform", contract.Platforms); err != nil {
			return err
		}
	}
	for i, item := range ideas {
		obj := item.(map[string]any)
		path := fmt.Sprintf("%s[%d]", contract.KeyContentIdeas, i)
		if err := checkEnum(obj["effort"], path+".effort", contract.Efforts); err != nil {
			return err
		}
	}
	return nil
}

func checkScore(raw any, path string, lo, hi float64) error {
	data, _ := json.Marshal(raw)
	var s model.Score
	_ = json.Unmarshal(data, &s)
	if !s.InRange(lo, hi) {
		return &SchemaViolation{Field: path, Reason: fmt.Sprintf("must be a number in [%g, %g]", lo, hi)}
	}
	return nil
}

func checkEnum(raw any, path string, allowed []string) error {
	s, _ := raw.(string)
	if !slices.Contains(allowed, s) {
		return &SchemaViolation{Field: path, Reason: "must be one of " + strings.Join(allowed, ", ")}
	}
	return nil
}
