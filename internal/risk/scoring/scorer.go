// Package scoring turns risk indicators and asset metadata into a 1-20 score and a category.
package scoring

import (
	"context"
	"errors"
	"math"
)

const (
	MinScore = 1
	MaxScore = 20
)

// Method records which strategy produced a score.
type Method string

const (
	MethodAI        Method = "ai"
	MethodHeuristic Method = "heuristic"
	MethodMarket    Method = "market_data"
)

// ErrNoScoreExtracted means the text generator answered without a usable in-range integer.
var ErrNoScoreExtracted = errors.New("no score could be extracted from the response")

// Indicators carries whatever statistical or categorical signals are known for an asset.
// Nil means unknown.
type Indicators struct {
	Volatility        *float64 `json:"volatility,omitempty"`
	VaR95             *float64 `json:"var_95,omitempty"`
	SharpeRatio       *float64 `json:"sharpe_ratio,omitempty"`
	MaxDrawdown       *float64 `json:"max_drawdown,omitempty"`
	Beta              *float64 `json:"beta,omitempty"`
	StandardDeviation *float64 `json:"standard_deviation,omitempty"`
	Liquidity         *float64 `json:"liquidity,omitempty"`
}

// AssetMetadata describes the asset being scored.
type AssetMetadata struct {
	Code            string
	AssetType       string
	Issuer          string
	Indexer         string
	YearsToMaturity *float64
	Rate            *float64
}

// Result is the outcome of any scorer.
type Result struct {
	Score    int    `json:"score"`
	Category string `json:"category"`
	Method   Method `json:"method"`
}

// Scorer is the shared contract of all scoring strategies.
type Scorer interface {
	Score(ctx context.Context, indicators Indicators, meta AssetMetadata) (Result, error)
}

// Clamp bounds a raw score into [MinScore, MaxScore], rounding to the nearest integer.
// NaN maps to MaxScore.
func Clamp(raw float64) int {
	if math.IsNaN(raw) {
		return MaxScore
	}
	if raw < MinScore {
		return MinScore
	}
	if raw > MaxScore {
		return MaxScore
	}
	return int(math.Round(raw))
}

func finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}
