package entity

import "time"

// AssetSearchRow is a row of the denormalized asset_search_view.
type AssetSearchRow struct {
	ID            string     `gorm:"column:id" json:"id"`
	AssetType     string     `gorm:"column:asset_type" json:"asset_type"`
	AssetCode     string     `gorm:"column:asset_code" json:"asset_code"`
	DisplayName   string     `gorm:"column:display_name" json:"display_name"`
	Issuer        *string    `gorm:"column:issuer" json:"issuer"`
	MaturityDate  *time.Time `gorm:"column:maturity_date" json:"maturity_date"`
	RiskScore     *int       `gorm:"column:risk_score" json:"risk_score"`
	RiskCategory  *string    `gorm:"column:risk_category" json:"risk_category"`
	Indexer       *string    `gorm:"column:indexer" json:"indexer"`
	Profitability *float64   `gorm:"column:profitability" json:"profitability"`
	Liquidity     *float64   `gorm:"column:liquidity" json:"liquidity"`
}

func (AssetSearchRow) TableName() string {
	return "asset_search_view"
}
