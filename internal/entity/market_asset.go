package entity

import "time"

// MarketAssetType is the variable-income class of a listed asset.
type MarketAssetType string

const (
	MarketAssetStock MarketAssetType = "stock"
	MarketAssetFII   MarketAssetType = "fii"
	MarketAssetETF   MarketAssetType = "etf"
	MarketAssetBDR   MarketAssetType = "bdr"
)

// RiskScoreUnavailable marks assets whose price history is missing or too short.
const RiskScoreUnavailable = -1

// MarketAsset is a Brapi-sourced listed asset with its current risk score and indicators embedded.
type MarketAsset struct {
	ID                  uint            `gorm:"primaryKey"`
	Ticker              string          `gorm:"not null;uniqueIndex"`
	Name                string
	AssetType           MarketAssetType `gorm:"not null"`
	Sector              string
	AverageVolume       int64
	RiskScore           *int
	RiskCategory        *string
	Volatility          *float64
	VaR95               *float64        `gorm:"column:var_95"`
	SharpeRatio         *float64
	MaxDrawdown         *float64
	Beta                *float64
	LastRiskCalculation *time.Time
	LastRiskError       *string
	CreatedAt           time.Time       `gorm:"autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime"`
}

func (MarketAsset) TableName() string {
	return "market_assets"
}
