// Package stats holds the pure return/risk statistics used by the scoring jobs.
package stats

import (
	"math"
	"sort"
)

const (
	// TradingDays is the annualization factor for daily series.
	TradingDays = 252

	// varTail is the left tail probability of the 95% VaR.
	varTail = 0.05
)

// PricePoint is the minimum a price observation must expose to feed the engine.
// AdjustedClose is optional; Close is used when it is nil.
type PricePoint struct {
	Close         float64
	AdjustedClose *float64
}

func (p PricePoint) value() float64 {
	if p.AdjustedClose != nil {
		return *p.AdjustedClose
	}
	return p.Close
}

// ComputeReturns builds simple daily returns from consecutive closes.
// A pair is dropped, not zeroed, when either close is non-positive.
func ComputeReturns(prices []PricePoint) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev, cur := prices[i-1].value(), prices[i].value()
		if prev <= 0 || cur <= 0 || math.IsNaN(prev) || math.IsNaN(cur) {
			continue
		}
		returns = append(returns, (cur-prev)/prev)
	}
	return returns
}

// Mean of the series, 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the population standard deviation, 0 when empty.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// Volatility is the annualized population standard deviation of returns.
func Volatility(returns []float64) float64 {
	return StdDev(returns) * math.Sqrt(TradingDays)
}

// VaR95 is the historical 95% value-at-risk as a positive percentage of loss.
func VaR95(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	idx := int(math.Floor(float64(len(sorted)) * varTail))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return -sorted[idx] * 100
}

// SharpeRatio annualizes the mean return and compares it with annualRiskFreeRate (e.g. 0.1075 for 10.75%).
func SharpeRatio(returns []float64, annualRiskFreeRate float64) float64 {
	vol := Volatility(returns)
	if vol == 0 {
		return 0
	}
	return (Mean(returns)*TradingDays - annualRiskFreeRate) / vol
}

// MaxDrawdown is the largest peak-to-trough decline as a positive percentage.
func MaxDrawdown(prices []PricePoint) float64 {
	var peak, maxDD float64
	for _, p := range prices {
		v := p.value()
		if v <= 0 {
			continue
		}
		if v > peak {
			peak = v
		}
		if dd := (peak - v) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD * 100
}

// Beta is cov(asset, market) / var(market). Callers truncate both series to the same length first.
// It returns nil, meaning unknown, on mismatched or empty input or a flat market.
func Beta(assetReturns, marketReturns []float64) *float64 {
	n := len(assetReturns)
	if n == 0 || n != len(marketReturns) {
		return nil
	}
	meanA, meanM := Mean(assetReturns), Mean(marketReturns)
	var cov, varM float64
	for i := 0; i < n; i++ {
		da := assetReturns[i] - meanA
		dm := marketReturns[i] - meanM
		cov += da * dm
		varM += dm * dm
	}
	if varM == 0 {
		return nil
	}
	beta := cov / varM
	return &beta
}

// AlignTail truncates both series to the length of the shorter one, keeping the most recent values.
func AlignTail(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[len(a)-n:], b[len(b)-n:]
}

// Percentile returns the element at floor(n*p) of the ascending-sorted copy, 0 when empty.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
