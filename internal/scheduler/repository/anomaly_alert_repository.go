package repository

import (
	"context"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

// AlertFilter narrows the anomaly alert listing.
type AlertFilter struct {
	FunctionName   string
	Severity       string
	ExecutionID    uint
	Unacknowledged bool
	Limit          int
	Offset         int
}

// AnomalyAlertRepository lists alerts and records acknowledgements.
type AnomalyAlertRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.AnomalyAlert, error)
	List(ctx context.Context, f AlertFilter) ([]entity.AnomalyAlert, int64, error)
	Acknowledge(ctx context.Context, id uint, by, notes string, at time.Time) (bool, error)
}

// NewAnomalyAlertRepository creates a new GORM-based anomaly alert repository.
func NewAnomalyAlertRepository(db *gorm.DB) AnomalyAlertRepository {
	return &anomalyAlertRepository{db: db}
}

type anomalyAlertRepository struct {
	db *gorm.DB
}

func (r *anomalyAlertRepository) FindByID(ctx context.Context, id uint) (*entity.AnomalyAlert, error) {
	var alert entity.AnomalyAlert
	if err := r.db.WithContext(ctx).First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *anomalyAlertRepository) List(ctx context.Context, f AlertFilter) ([]entity.AnomalyAlert, int64, error) {
	qFilter := []string{"1 = 1"}
	qFilterParam := []interface{}{}
	if f.FunctionName != "" {
		qFilter = append(qFilter, "function_name = ?")
		qFilterParam = append(qFilterParam, f.FunctionName)
	}
	if f.Severity != "" {
		qFilter = append(qFilter, "severity = ?")
		qFilterParam = append(qFilterParam, f.Severity)
	}
	if f.ExecutionID != 0 {
		qFilter = append(qFilter, "execution_id = ?")
		qFilterParam = append(qFilterParam, f.ExecutionID)
	}
	if f.Unacknowledged {
		qFilter = append(qFilter, "is_acknowledged = FALSE")
	}
	where := strings.Join(qFilter, " AND ")

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.AnomalyAlert{}).Where(where, qFilterParam...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alerts []entity.AnomalyAlert
	err := r.db.WithContext(ctx).
		Where(where, qFilterParam...).
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

// Acknowledge closes an open alert. It reports false when the alert was already acknowledged.
func (r *anomalyAlertRepository) Acknowledge(ctx context.Context, id uint, by, notes string, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"is_acknowledged": true,
		"acknowledged_by": by,
		"acknowledged_at": at,
	}
	if notes != "" {
		updates["resolution_notes"] = notes
	}
	res := r.db.WithContext(ctx).
		Model(&entity.AnomalyAlert{}).
		Where("id = ? AND is_acknowledged = FALSE", id).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
