package entity

import (
	"time"

	"gorm.io/datatypes"
)

// RiskScore is the current score for a fixed-income asset, one row per (asset_type, asset_id).
type RiskScore struct {
	ID           uint              `gorm:"primaryKey"`
	AssetType    string            `gorm:"not null;uniqueIndex:idx_risk_scores_asset"`
	AssetID      uint              `gorm:"not null;uniqueIndex:idx_risk_scores_asset"`
	Score        int               `gorm:"not null"`
	Category     string            `gorm:"not null"`
	Method       string            `gorm:"not null"`
	Indicators   datatypes.JSONMap `gorm:"type:jsonb"`
	CalculatedAt time.Time         `gorm:"not null"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime"`
}

func (RiskScore) TableName() string {
	return "risk_scores"
}

// RiskScoreAssetFixedIncome is the asset_type namespace of risk_scores rows keyed by fixed_income_assets.id.
const RiskScoreAssetFixedIncome = "fixed_income"
