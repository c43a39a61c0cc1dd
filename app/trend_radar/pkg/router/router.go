// Package router 为每次生成调用选择模型：先用主模型，失败后用备用模型重试一次。
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Completer 单次对话补全调用
type Completer interface {
	Complete(ctx context.Context, model, systemPrompt, prompt string) (string, error)
}

// GenerationFailure 主模型与备用模型都失败
type GenerationFailure struct {
	Model string
	Err   error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("generation failed (last model %s): %v", e.Model, e.Err)
}

func (e *GenerationFailure) Unwrap() error { return e.Err }

// ErrEmptyResponse 模型返回了空内容
var ErrEmptyResponse = errors.New("empty response")

// Router 模型路由
type Router struct {
	completer Completer
	primary   string
	fallback  string
	log       *logrus.Entry
}

// New 创建路由。fallback 为空或与 primary 相同时仍会重试一次。
func New(completer Completer, primary, fallback string, log *logrus.Entry) *Router {
	if fallback == "" {
		fallback = primary
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Router{
		completer: completer,
		primary:   primary,
		fallback:  fallback,
		log:       log,
	}
}

// Generate 主模型失败（网络、非 2xx、响应异常、超时）后用备用模型以相同提示词重试一次，
// 不做退避。两次都失败返回 *GenerationFailure。
func (r *Router) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	text, err := r.attempt(ctx, r.primary, systemPrompt, prompt)
	if err == nil {
		return text, nil
	}
	r.log.Warnf("主模型 [%s] 调用失败，切换备用模型 [%s]: %v", r.primary, r.fallback, err)

	text, err = r.attempt(ctx, r.fallback, systemPrompt, prompt)
	if err == nil {
		return text, nil
	}
	r.log.Errorf("备用模型 [%s] 调用失败: %v", r.fallback, err)
	return "", &GenerationFailure{Model: r.fallback, Err: err}
}

func (r *Router) attempt(ctx context.Context, model, systemPrompt, prompt string) (string, error) {
	text, err := r.completer.Complete(ctx, model, systemPrompt, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	r.log.Debugf("模型 [%s] 返回 %d 字节", model, len(text))
	return text, nil
}
