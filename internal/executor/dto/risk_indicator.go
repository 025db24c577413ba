package dto

import "time"

// RiskIndicatorRequest asks for the indicator set of one user investment.
type RiskIndicatorRequest struct {
	InvestmentID string `json:"investment_id"`
	Ticker       string `json:"ticker"`
	// Benchmark overrides the configured benchmark ticker.
	Benchmark string `json:"benchmark,omitempty"`
}

// RiskIndicatorResponse mirrors the stored indicator row.
type RiskIndicatorResponse struct {
	ID              uint      `json:"id"`
	InvestmentID    string    `json:"investment_id"`
	Ticker          string    `json:"ticker"`
	Volatility      float64   `json:"volatility"`
	VaR95           float64   `json:"var_95"`
	SharpeRatio     float64   `json:"sharpe_ratio"`
	MaxDrawdown     float64   `json:"max_drawdown"`
	Beta            *float64  `json:"beta"`
	Observations    int       `json:"observations"`
	BenchmarkTicker string    `json:"benchmark_ticker"`
	CalculatedAt    time.Time `json:"calculated_at"`
}
