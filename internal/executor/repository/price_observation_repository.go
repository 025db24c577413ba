package repository

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceObservationRepository stores daily bars shared by the risk jobs and the indicator calculation.
type PriceObservationRepository interface {
	Upsert(ctx context.Context, observations []entity.PriceObservation) error
	FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.PriceObservation, error)
	LastUpdated(ctx context.Context, ticker string) (*time.Time, error)
}

type priceObservationRepository struct {
	db *gorm.DB
}

func NewPriceObservationRepository(db *gorm.DB) PriceObservationRepository {
	return &priceObservationRepository{db: db}
}

// Upsert writes observations keyed by (ticker, date), replacing the OHLCV values of existing days.
func (r *priceObservationRepository) Upsert(ctx context.Context, observations []entity.PriceObservation) error {
	if len(observations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "adjusted_close", "volume", "updated_at"}),
	}).CreateInBatches(&observations, 500).Error
}

// FindSince returns the observations of ticker from since onwards in ascending date order.
func (r *priceObservationRepository) FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.PriceObservation, error) {
	var out []entity.PriceObservation
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND date >= ?", ticker, since).
		Order("date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LastUpdated returns when the ticker's history was last written, or nil when there is none.
func (r *priceObservationRepository) LastUpdated(ctx context.Context, ticker string) (*time.Time, error) {
	var last *time.Time
	err := r.db.WithContext(ctx).Model(&entity.PriceObservation{}).
		Where("ticker = ?", ticker).
		Select("MAX(updated_at)").
		Scan(&last).Error
	if err != nil {
		return nil, err
	}
	return last, nil
}
