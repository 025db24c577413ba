package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// TokenLimiter paces consumption of a per-minute token budget, e.g. LLM input tokens.
type TokenLimiter struct {
	limiter *rate.Limiter
	perMin  int
}

// NewTokenLimiter allows tokensPerMinute tokens per minute with a full minute of burst.
func NewTokenLimiter(tokensPerMinute int) *TokenLimiter {
	if tokensPerMinute <= 0 {
		return &TokenLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &TokenLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(tokensPerMinute)/60.0), tokensPerMinute),
		perMin:  tokensPerMinute,
	}
}

// Wait blocks until n tokens are available.
func (t *TokenLimiter) Wait(ctx context.Context, n int) error {
	if t.perMin > 0 && n > t.perMin {
		return fmt.Errorf("request of %d tokens exceeds the per-minute budget of %d", n, t.perMin)
	}
	return t.limiter.WaitN(ctx, n)
}

// GetRemaining reports the tokens currently available.
func (t *TokenLimiter) GetRemaining() int {
	return int(t.limiter.Tokens())
}
