package repository

import (
	"context"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

// JobRepository resolves the job definitions referenced by invocations.
type JobRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Job, error)
	FindByType(ctx context.Context, jobType entity.JobType) (*entity.Job, error)
}

// NewJobRepository creates a new GORM-based job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

type jobRepository struct {
	db *gorm.DB
}

// FindByID retrieves a job by its ID.
func (r *jobRepository) FindByID(ctx context.Context, id uint) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByType returns the oldest definition of a job type.
func (r *jobRepository) FindByType(ctx context.Context, jobType entity.JobType) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).Where("type = ?", jobType).Order("id").First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
