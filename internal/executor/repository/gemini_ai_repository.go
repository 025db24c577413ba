package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiTextGenerator generates risk assessments through the Gemini API.
type geminiTextGenerator struct {
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiTextGenerator creates a TextGenerator paced by the configured request and token budgets.
func NewGeminiTextGenerator(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) scoring.TextGenerator {
	perMinute := cfg.Gemini.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 15
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)

	return &geminiTextGenerator{
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		genAiClient:    genAiClient,
	}
}

// GenerateText sends prompt as a single user turn and returns the concatenated text of the first candidate.
func (r *geminiTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: 256,
	})
	if err != nil {
		r.logger.Error("Failed to generate content", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to Gemini API: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}
	r.logger.Debug("Received assessment from Gemini", logger.StringField("content", text))
	return text, nil
}
