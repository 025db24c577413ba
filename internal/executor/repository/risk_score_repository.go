package repository

import (
	"context"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RiskScoreRepository keeps the current score per fixed-income asset.
type RiskScoreRepository interface {
	Upsert(ctx context.Context, score *entity.RiskScore) error
}

type riskScoreRepository struct {
	db *gorm.DB
}

func NewRiskScoreRepository(db *gorm.DB) RiskScoreRepository {
	return &riskScoreRepository{db: db}
}

// Upsert replaces the score stored for (asset_type, asset_id).
func (r *riskScoreRepository) Upsert(ctx context.Context, score *entity.RiskScore) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_type"}, {Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "category", "method", "indicators", "calculated_at", "updated_at"}),
	}).Create(score).Error
}
