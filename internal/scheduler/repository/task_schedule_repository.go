package repository

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

// TaskScheduleRepository persists the cron triggers attached to jobs.
type TaskScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.TaskSchedule) error
	FindByID(ctx context.Context, id uint) (*entity.TaskSchedule, error)
	FindAll(ctx context.Context) ([]entity.TaskSchedule, error)
	Update(ctx context.Context, schedule *entity.TaskSchedule) error
	Delete(ctx context.Context, id uint) error
	FindDue(ctx context.Context, now time.Time) ([]entity.TaskSchedule, error)
	MarkExecuted(ctx context.Context, id uint, last, next time.Time) error
}

// NewTaskScheduleRepository creates a new GORM-based task schedule repository.
func NewTaskScheduleRepository(db *gorm.DB) TaskScheduleRepository {
	return &taskScheduleRepository{db: db}
}

type taskScheduleRepository struct {
	db *gorm.DB
}

func (r *taskScheduleRepository) Create(ctx context.Context, schedule *entity.TaskSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *taskScheduleRepository) FindByID(ctx context.Context, id uint) (*entity.TaskSchedule, error) {
	schedule := new(entity.TaskSchedule)
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(schedule).Error
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// FindAll lists schedules grouped by job.
func (r *taskScheduleRepository) FindAll(ctx context.Context) ([]entity.TaskSchedule, error) {
	schedules := make([]entity.TaskSchedule, 0)
	err := r.db.WithContext(ctx).Order("job_id, id").Find(&schedules).Error
	return schedules, err
}

// Update writes the user-editable columns only. Execution timestamps are owned by the
// scheduler loop and go through MarkExecuted.
func (r *taskScheduleRepository) Update(ctx context.Context, schedule *entity.TaskSchedule) error {
	res := r.db.WithContext(ctx).
		Model(schedule).
		Select("cron_expression", "is_active", "next_execution", "updated_at").
		Updates(schedule)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskScheduleRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.TaskSchedule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindDue returns the active schedules whose next execution is not in the future.
// A schedule with no next execution yet is due immediately.
func (r *taskScheduleRepository) FindDue(ctx context.Context, now time.Time) ([]entity.TaskSchedule, error) {
	var due []entity.TaskSchedule
	err := r.db.WithContext(ctx).
		Where("is_active").
		Where(r.db.Where("next_execution IS NULL").Or("next_execution <= ?", now)).
		Order("next_execution NULLS FIRST, id").
		Find(&due).Error
	if err != nil {
		return nil, err
	}
	return due, nil
}

// MarkExecuted records a publish. A schedule deactivated since it was read keeps its
// timestamps untouched.
func (r *taskScheduleRepository) MarkExecuted(ctx context.Context, id uint, last, next time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.TaskSchedule{}).
		Where("id = ? AND is_active", id).
		Updates(map[string]interface{}{
			"last_execution": last,
			"next_execution": next,
		}).Error
}
