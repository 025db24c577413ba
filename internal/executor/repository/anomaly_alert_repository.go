package repository

import (
	"context"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

// AnomalyAlertRepository persists detector output. Alerts are written once per terminal execution.
type AnomalyAlertRepository interface {
	CreateBatch(ctx context.Context, alerts []entity.AnomalyAlert) error
	CountUnacknowledged(ctx context.Context, functionName string) (int64, error)
	ListByExecution(ctx context.Context, executionID uint) ([]entity.AnomalyAlert, error)
}

type anomalyAlertRepository struct {
	db *gorm.DB
}

func NewAnomalyAlertRepository(db *gorm.DB) AnomalyAlertRepository {
	return &anomalyAlertRepository{db: db}
}

func (r *anomalyAlertRepository) CreateBatch(ctx context.Context, alerts []entity.AnomalyAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&alerts).Error
}

func (r *anomalyAlertRepository) CountUnacknowledged(ctx context.Context, functionName string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.AnomalyAlert{}).
		Where("function_name = ? AND is_acknowledged = ?", functionName, false).
		Count(&n).Error
	return n, err
}

func (r *anomalyAlertRepository) ListByExecution(ctx context.Context, executionID uint) ([]entity.AnomalyAlert, error) {
	var alerts []entity.AnomalyAlert
	if err := r.db.WithContext(ctx).Where("execution_id = ?", executionID).Order("id").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
