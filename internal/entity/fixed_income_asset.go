package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetSource tells which reference-data feed owns a fixed-income asset.
type AssetSource string

const (
	SourceANBIMA AssetSource = "anbima"
	SourceCVM    AssetSource = "cvm"
)

// FixedIncomeAsset is a fixed-income instrument from ANBIMA (secondary market) or CVM (public offerings).
type FixedIncomeAsset struct {
	ID                  uint                `gorm:"primaryKey"`
	Source              AssetSource         `gorm:"not null;uniqueIndex:idx_fixed_income_source_code"`
	Code                string              `gorm:"not null;uniqueIndex:idx_fixed_income_source_code"`
	AssetType           string              `gorm:"not null"`
	Issuer              string
	Indexer             string
	Rate                decimal.NullDecimal `gorm:"type:numeric"`
	UnitPrice           decimal.NullDecimal `gorm:"type:numeric"`
	StandardDeviation   *float64
	Duration            *float64            // business days
	MaturityDate        *time.Time
	Liquidity           *float64
	OfferVolume         decimal.NullDecimal `gorm:"type:numeric"`
	LastRiskCalculation *time.Time
	LastRiskError       *string
	CreatedAt           time.Time           `gorm:"autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"autoUpdateTime"`
}

func (FixedIncomeAsset) TableName() string {
	return "fixed_income_assets"
}

// YearsToMaturity returns the remaining tenor in years relative to now, or nil if unknown.
func (a FixedIncomeAsset) YearsToMaturity(now time.Time) *float64 {
	if a.MaturityDate == nil {
		return nil
	}
	years := a.MaturityDate.Sub(now).Hours() / 24 / 365.25
	return &years
}
