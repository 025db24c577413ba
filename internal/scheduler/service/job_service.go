package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	executordto "github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/repository"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"gorm.io/datatypes"
)

// JobService defines the interface for managing risk job definitions.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJobByID(ctx context.Context, id uint) (*dto.JobResponse, error)
	GetAllJobs(ctx context.Context) ([]*dto.JobResponse, error)
	UpdateJob(ctx context.Context, id uint, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, id uint) error
}

// NewJobService creates a new job service.
// Jobs stored without a timeout get defaultTimeout seconds.
func NewJobService(jobRepo repository.JobRepository, defaultTimeout int, logger *logger.Logger) JobService {
	return &jobService{
		jobRepo:        jobRepo,
		defaultTimeout: defaultTimeout,
		logger:         logger,
		now:            time.Now,
	}
}

type jobService struct {
	jobRepo        repository.JobRepository
	defaultTimeout int
	logger         *logger.Logger
	now            func() time.Time
}

// CreateJob validates and stores a new job with its schedules.
func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	job := &entity.Job{}
	if err := s.apply(job, req.Name, req.Description, req.Type, req.Payload, req.Timeout, req.Schedules); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		s.logger.Error("Failed to create job", logger.ErrorField(err))
		return nil, err
	}

	s.logger.Info("Job created successfully", logger.Field("job_id", job.ID), logger.StringField("type", string(job.Type)))
	return mapToJobResponse(job), nil
}

// GetJobByID retrieves a job by its ID.
func (s *jobService) GetJobByID(ctx context.Context, id uint) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job", id)
	}
	return mapToJobResponse(job), nil
}

// GetAllJobs retrieves all jobs.
func (s *jobService) GetAllJobs(ctx context.Context) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	jobResponses := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		jobResponses = append(jobResponses, mapToJobResponse(&jobs[i]))
	}
	return jobResponses, nil
}

// DeleteJob deletes a job by its ID.
func (s *jobService) DeleteJob(ctx context.Context, id uint) error {
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete job", logger.ErrorField(err), logger.Field("job_id", id))
		return notFound(err, "job", id)
	}
	s.logger.Info("Job deleted successfully", logger.Field("job_id", id))
	return nil
}

// UpdateJob replaces the definition and schedules of an existing job.
func (s *jobService) UpdateJob(ctx context.Context, id uint, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job", id)
	}

	if err := s.apply(job, req.Name, req.Description, req.Type, req.Payload, req.Timeout, req.Schedules); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		s.logger.Error("Failed to update job", logger.ErrorField(err), logger.Field("job_id", id))
		return nil, err
	}

	s.logger.Info("Job updated successfully", logger.Field("job_id", id))
	return mapToJobResponse(job), nil
}

// apply validates the request fields and copies them onto job. The payload must decode as an
// invocation request; schedules get their first next_execution from the cron expression.
func (s *jobService) apply(job *entity.Job, name, description, jobType string, payload json.RawMessage, timeout int, schedules []dto.ScheduleDTO) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !entity.JobType(jobType).IsValid() {
		return fmt.Errorf("%w: unknown job type %q", ErrValidation, jobType)
	}
	if timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrValidation)
	}
	if timeout == 0 {
		timeout = s.defaultTimeout
	}
	if len(payload) == 0 || string(payload) == "null" {
		payload = json.RawMessage("{}")
	}
	var inv executordto.InvocationRequest
	if err := json.Unmarshal(payload, &inv); err != nil {
		return fmt.Errorf("%w: payload is not a valid invocation request: %v", ErrValidation, err)
	}

	now := s.now()
	job.Name = name
	job.Description = description
	job.Type = entity.JobType(jobType)
	job.Payload = datatypes.JSON(payload)
	job.Timeout = timeout
	job.Schedules = make([]entity.TaskSchedule, 0, len(schedules))
	for _, sDto := range schedules {
		sched, err := parseCron(sDto.CronExpression)
		if err != nil {
			return err
		}
		job.Schedules = append(job.Schedules, entity.TaskSchedule{
			JobID:          job.ID,
			CronExpression: sDto.CronExpression,
			IsActive:       sDto.IsActive,
			NextExecution:  sql.NullTime{Time: sched.Next(now), Valid: true},
		})
	}
	return nil
}

// mapToJobResponse maps an entity.Job to a dto.JobResponse.
func mapToJobResponse(job *entity.Job) *dto.JobResponse {
	schedules := make([]dto.ScheduleResponseDTO, 0, len(job.Schedules))
	for _, schedule := range job.Schedules {
		schedules = append(schedules, dto.ScheduleResponseDTO{
			ID:             schedule.ID,
			CronExpression: schedule.CronExpression,
			IsActive:       schedule.IsActive,
			NextExecution:  schedule.NextExecution,
			LastExecution:  schedule.LastExecution,
		})
	}

	return &dto.JobResponse{
		ID:          job.ID,
		Name:        job.Name,
		Description: job.Description,
		Type:        string(job.Type),
		Payload:     json.RawMessage(job.Payload),
		Timeout:     job.Timeout,
		Schedules:   schedules,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}
