package repository

import (
	"context"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

// RiskIndicatorRepository appends indicator snapshots; history is never overwritten.
type RiskIndicatorRepository interface {
	Create(ctx context.Context, indicator *entity.RiskIndicator) error
}

type riskIndicatorRepository struct {
	db *gorm.DB
}

func NewRiskIndicatorRepository(db *gorm.DB) RiskIndicatorRepository {
	return &riskIndicatorRepository{db: db}
}

func (r *riskIndicatorRepository) Create(ctx context.Context, indicator *entity.RiskIndicator) error {
	return r.db.WithContext(ctx).Create(indicator).Error
}
