package entity

import "time"

// PriceObservation is one trading day of one ticker. Rows are upserted on (ticker, date).
type PriceObservation struct {
	ID            uint      `gorm:"primaryKey"`
	Ticker        string    `gorm:"not null;uniqueIndex:idx_price_ticker_date"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_price_ticker_date"`
	Open          float64
	High          float64
	Low           float64
	Close         float64
	AdjustedClose *float64
	Volume        int64
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (PriceObservation) TableName() string {
	return "price_observations"
}

// EffectiveClose prefers the adjusted close and falls back to the raw close.
func (p PriceObservation) EffectiveClose() float64 {
	if p.AdjustedClose != nil {
		return *p.AdjustedClose
	}
	return p.Close
}
