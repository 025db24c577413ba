package repository

import (
	"context"
	"strings"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

// ExecutionFilter narrows the execution log listing.
type ExecutionFilter struct {
	FunctionName string
	Status       string
	Limit        int
	Offset       int
}

// ExecutionRecordRepository reads the execution log written by the executor.
type ExecutionRecordRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.ExecutionRecord, error)
	List(ctx context.Context, f ExecutionFilter) ([]entity.ExecutionRecord, int64, error)
}

// NewExecutionRecordRepository creates a new GORM-based execution log reader.
func NewExecutionRecordRepository(db *gorm.DB) ExecutionRecordRepository {
	return &executionRecordRepository{db: db}
}

type executionRecordRepository struct {
	db *gorm.DB
}

func (r *executionRecordRepository) FindByID(ctx context.Context, id uint) (*entity.ExecutionRecord, error) {
	var record entity.ExecutionRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *executionRecordRepository) List(ctx context.Context, f ExecutionFilter) ([]entity.ExecutionRecord, int64, error) {
	qFilter := []string{"1 = 1"}
	qFilterParam := []interface{}{}
	if f.FunctionName != "" {
		qFilter = append(qFilter, "function_name = ?")
		qFilterParam = append(qFilterParam, f.FunctionName)
	}
	if f.Status != "" {
		qFilter = append(qFilter, "status = ?")
		qFilterParam = append(qFilterParam, f.Status)
	}
	where := strings.Join(qFilter, " AND ")

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.ExecutionRecord{}).Where(where, qFilterParam...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entity.ExecutionRecord
	err := r.db.WithContext(ctx).
		Where(where, qFilterParam...).
		Order("started_at DESC, id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
