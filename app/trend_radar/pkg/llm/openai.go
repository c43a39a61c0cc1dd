// Package llm 对接具体的对话补全服务，供模型路由调用。
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
)

// OpenAI OpenAI 兼容接口（OpenRouter 等），按调用指定模型名
type OpenAI struct {
	chatModel   model.BaseChatModel
	limiter     *rate.Limiter
	temperature float32
	maxTokens   int
}

// NewOpenAI 创建 OpenAI 兼容的补全客户端
func NewOpenAI(ctx context.Context, cfg config.LLMConfig, limiter *rate.Limiter) (*OpenAI, error) {
	temperature := cfg.Temperature
	maxTokens := cfg.MaxTokens
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &OpenAI{
		chatModel:   chatModel,
		limiter:     limiter,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete 实现 router.Completer
func (o *OpenAI) Complete(ctx context.Context, modelName, systemPrompt, prompt string) (string, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}

	resp, err := o.chatModel.Generate(ctx, messages,
		model.WithModel(modelName),
		model.WithTemperature(o.temperature),
		model.WithMaxTokens(o.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion [%s]: %w", modelName, err)
	}
	if resp == nil {
		return "", errors.New("chat completion returned no message")
	}
	return strings.TrimSpace(resp.Content), nil
}
