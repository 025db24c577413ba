package repository

import (
	"context"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

// JobRepository defines the interface for risk job definition data operations.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	FindByID(ctx context.Context, id uint) (*entity.Job, error)
	FindAll(ctx context.Context) ([]entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	Delete(ctx context.Context, id uint) error
}

// NewJobRepository creates a new GORM-based job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

type jobRepository struct {
	db *gorm.DB
}

// Create creates a new job together with its schedules.
func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID retrieves a job by its ID.
func (r *jobRepository) FindByID(ctx context.Context, id uint) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).Preload("Schedules").First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// FindAll retrieves all jobs.
func (r *jobRepository) FindAll(ctx context.Context) ([]entity.Job, error) {
	var jobs []entity.Job
	if err := r.db.WithContext(ctx).Preload("Schedules").Order("id").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update replaces the job row and its schedules within a transaction.
func (r *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&entity.TaskSchedule{}).Error; err != nil {
			return err
		}
		return tx.Save(job).Error
	})
}

// Delete removes a job and its schedules. The execution log is keyed by function name and is kept.
func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&entity.TaskSchedule{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Job{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
