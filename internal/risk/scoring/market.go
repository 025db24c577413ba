package scoring

import (
	"context"
	"math"
	"strings"
)

const (
	marketTermCap = 20.0

	weightVolatility  = 0.30
	weightBeta        = 0.25
	weightVaR         = 0.20
	weightMaxDrawdown = 0.15

	// DefaultBeta is assumed when no benchmark-aligned beta is known.
	DefaultBeta = 1.0
)

// Risk multipliers per variable-income asset type.
var marketTypeMultipliers = map[string]float64{
	"fii":   0.8,
	"etf":   0.9,
	"stock": 1.0,
	"bdr":   1.2,
}

// MarketDataScorer scores listed assets from their price statistics. It is fully deterministic.
type MarketDataScorer struct{}

func NewMarketDataScorer() *MarketDataScorer {
	return &MarketDataScorer{}
}

func (m *MarketDataScorer) Score(_ context.Context, indicators Indicators, meta AssetMetadata) (Result, error) {
	score := Clamp(m.raw(indicators, meta))
	return Result{
		Score:    score,
		Category: Categorize(score, FamilyMarketData),
		Method:   MethodMarket,
	}, nil
}

func (m *MarketDataScorer) raw(indicators Indicators, meta AssetMetadata) float64 {
	vol, _ := finite(indicators.Volatility)
	varPct, _ := finite(indicators.VaR95)
	mdd, _ := finite(indicators.MaxDrawdown)
	beta := ResolveBeta(indicators.Beta)

	sum := weightVolatility*capTerm(vol/3) +
		weightBeta*capTerm(math.Abs(beta)*8) +
		weightVaR*capTerm(varPct*4) +
		weightMaxDrawdown*capTerm(mdd/3)

	return sum * MarketTypeMultiplier(meta.AssetType)
}

// ResolveBeta substitutes DefaultBeta for an unknown beta. The statistics layer reports
// unknown as nil; only scoring applies the market-average assumption.
func ResolveBeta(beta *float64) float64 {
	if b, ok := finite(beta); ok {
		return b
	}
	return DefaultBeta
}

// MarketTypeMultiplier returns the asset-type multiplier, 1.0 for unknown types.
func MarketTypeMultiplier(assetType string) float64 {
	if m, ok := marketTypeMultipliers[strings.ToLower(assetType)]; ok {
		return m
	}
	return 1.0
}

func capTerm(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Min(v, marketTermCap)
}
