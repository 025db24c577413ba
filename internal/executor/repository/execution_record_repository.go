package repository

import (
	"context"
	"errors"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

var terminalStatuses = []entity.ExecutionStatus{
	entity.StatusCompleted, entity.StatusCompletedWithErrors, entity.StatusFailed,
	entity.StatusSuccess, entity.StatusPartial, entity.StatusError,
}

var baselineStatuses = []entity.ExecutionStatus{
	entity.StatusCompleted, entity.StatusCompletedWithErrors, entity.StatusSuccess, entity.StatusPartial,
}

// ExecutionRecordRepository defines the execution log operations of the executor.
type ExecutionRecordRepository interface {
	Create(ctx context.Context, record *entity.ExecutionRecord) error
	Update(ctx context.Context, record *entity.ExecutionRecord) error
	// FindPreviousTerminal returns the latest terminal record of the same series before id, or nil.
	// A chunk with no history of its own is compared with the latest chunk of the function.
	FindPreviousTerminal(ctx context.Context, current *entity.ExecutionRecord) (*entity.ExecutionRecord, error)
	// FindPreviousBaseline returns the latest successful or partial record of the same series before id, or nil.
	FindPreviousBaseline(ctx context.Context, current *entity.ExecutionRecord) (*entity.ExecutionRecord, error)
	FindLatestTerminal(ctx context.Context, functionName string) (*entity.ExecutionRecord, error)
}

// NewExecutionRecordRepository creates a new GORM-based execution record repository.
func NewExecutionRecordRepository(db *gorm.DB) ExecutionRecordRepository {
	return &executionRecordRepository{db: db}
}

type executionRecordRepository struct {
	db *gorm.DB
}

func (r *executionRecordRepository) Create(ctx context.Context, record *entity.ExecutionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update writes the terminal state of a record.
func (r *executionRecordRepository) Update(ctx context.Context, record *entity.ExecutionRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// series narrows to records comparable with current: same function and execution type, and the
// same chunk unless anyChunk is set.
func (r *executionRecordRepository) series(ctx context.Context, current *entity.ExecutionRecord, anyChunk bool) *gorm.DB {
	q := r.db.WithContext(ctx).
		Where("function_name = ? AND execution_type = ? AND id < ?", current.FunctionName, current.ExecutionType, current.ID)
	switch {
	case anyChunk:
		q = q.Where("chunk_index IS NOT NULL")
	case current.ChunkIndex != nil:
		q = q.Where("chunk_index = ?", *current.ChunkIndex)
	default:
		q = q.Where("chunk_index IS NULL")
	}
	return q
}

// previous looks up the same chunk first. A chunk index the series has never produced, as when
// the pending set grows by a chunk, falls back to the latest chunked run of the function.
func (r *executionRecordRepository) previous(ctx context.Context, current *entity.ExecutionRecord, statuses []entity.ExecutionStatus) (*entity.ExecutionRecord, error) {
	record, err := first(r.series(ctx, current, false).Where("status IN ?", statuses).Order("id DESC"))
	if err != nil || record != nil || current.ChunkIndex == nil {
		return record, err
	}
	return first(r.series(ctx, current, true).Where("status IN ?", statuses).Order("id DESC"))
}

func (r *executionRecordRepository) FindPreviousTerminal(ctx context.Context, current *entity.ExecutionRecord) (*entity.ExecutionRecord, error) {
	return r.previous(ctx, current, terminalStatuses)
}

func (r *executionRecordRepository) FindPreviousBaseline(ctx context.Context, current *entity.ExecutionRecord) (*entity.ExecutionRecord, error) {
	return r.previous(ctx, current, baselineStatuses)
}

func (r *executionRecordRepository) FindLatestTerminal(ctx context.Context, functionName string) (*entity.ExecutionRecord, error) {
	return first(r.db.WithContext(ctx).
		Where("function_name = ? AND status IN ?", functionName, terminalStatuses).
		Order("started_at DESC"))
}

func first(q *gorm.DB) (*entity.ExecutionRecord, error) {
	var record entity.ExecutionRecord
	if err := q.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
