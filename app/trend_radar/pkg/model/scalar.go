package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text 宽松字符串：模型常把字符串字段写成数字、布尔或 null，这里统一转成文本。
type Text string

// UnmarshalJSON 实现 json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case float64:
		*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(x))
	default:
		// 对象或数组：保留紧凑的原始 JSON
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*t = Text(buf.String())
	}
	return nil
}

// Or 为空时返回占位符
func (t Text) Or(placeholder string) string {
	if strings.TrimSpace(string(t)) == "" {
		return placeholder
	}
	return string(t)
}

// String 实现 fmt.Stringer
func (t Text) String() string { return string(t) }

// Texts 将 []Text 转成 []string
func Texts(in []Text) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		out = append(out, string(t))
	}
	return out
}

// Score 评分：接受数字、数字字符串或 null
type Score struct {
	Value float64
	Valid bool
}

// NewScore 创建有效评分
func NewScore(v float64) Score { return Score{Value: v, Valid: true} }

// UnmarshalJSON 实现 json.Unmarshaler
func (s *Score) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Score{}
	switch x := v.(type) {
	case float64:
		*s = NewScore(x)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			*s = NewScore(f)
		}
	}
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'f', -1, 64)), nil
}

// String 无效评分显示为 "-"
func (s Score) String() string {
	if !s.Valid {
		return "-"
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// InRange 判断评分是否落在闭区间内
func (s Score) InRange(lo, hi float64) bool {
	return s.Valid && s.Value >= lo && s.Value <= hi
}
