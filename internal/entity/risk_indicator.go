package entity

import "time"

// RiskIndicator is a computed indicator set for one user investment. Rows are append-only.
type RiskIndicator struct {
	ID              uint      `gorm:"primaryKey"`
	InvestmentID    string    `gorm:"not null;index"`
	Ticker          string    `gorm:"not null"`
	Volatility      float64
	VaR95           float64   `gorm:"column:var_95"`
	SharpeRatio     float64
	MaxDrawdown     float64
	Beta            *float64
	Observations    int
	BenchmarkTicker string
	CalculatedAt    time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (RiskIndicator) TableName() string {
	return "risk_indicators"
}
