package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const riskAnalystSystemPrompt = "Você é um analista de risco de crédito. Responda apenas com a linha \"score: N\"."

// openRouterTextGenerator talks to any OpenAI-compatible chat completions endpoint, OpenRouter by default.
type openRouterTextGenerator struct {
	client *resty.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewOpenRouterTextGenerator creates a TextGenerator for the configured chat completions endpoint.
func NewOpenRouterTextGenerator(cfg *config.Config, log *logger.Logger) scoring.TextGenerator {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.OpenRouter.BaseURL, "/")).
		SetTimeout(90*time.Second).
		SetAuthToken(cfg.OpenRouter.APIKey).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &openRouterTextGenerator{client: client, cfg: cfg, logger: log}
}

// GenerateText returns the content of the first completion choice.
func (r *openRouterTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	body := dto.ChatCompletionRequest{
		Model: r.cfg.OpenRouter.Model,
		Messages: []dto.ChatMessage{
			{Role: "system", Content: riskAnalystSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   256,
	}

	var out dto.ChatCompletionResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		r.logger.Error("Failed to send request to OpenRouter", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.IsError() {
		msg := resp.String()
		if out.Error != nil {
			msg = out.Error.Message
		}
		r.logger.Error("Received non-OK response from OpenRouter", logger.IntField("status_code", resp.StatusCode()))
		return "", fmt.Errorf("received non-OK response from OpenRouter: %d - %s", resp.StatusCode(), msg)
	}

	if len(out.Choices) == 0 {
		r.logger.Warn("Received empty choices from OpenRouter")
		return "", fmt.Errorf("received empty choices from OpenRouter")
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	r.logger.Debug("Received assessment from OpenRouter", logger.StringField("content", content))
	return content, nil
}
