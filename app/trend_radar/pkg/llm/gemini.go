package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
)

// Gemini Google Gemini 补全客户端
type Gemini struct {
	client      *genai.Client
	limiter     *rate.Limiter
	temperature float32
	maxTokens   int
}

// NewGemini 创建 Gemini 补全客户端
func NewGemini(ctx context.Context, cfg config.LLMConfig, limiter *rate.Limiter) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("Gemini 初始化失败: %w", err)
	}
	return &Gemini{
		client:      client,
		limiter:     limiter,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete 实现 router.Completer
func (g *Gemini) Complete(ctx context.Context, modelName, systemPrompt, prompt string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
		MaxOutputTokens:   int32(g.maxTokens),
	}
	resp, err := g.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate [%s]: %w", modelName, err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
