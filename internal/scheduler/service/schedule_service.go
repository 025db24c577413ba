package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/repository"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// ScheduleService defines the interface for managing schedules.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetScheduleByID(ctx context.Context, id uint) (*dto.ScheduleResponse, error)
	GetAllSchedules(ctx context.Context) ([]*dto.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id uint) error
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(scheduleRepo repository.TaskScheduleRepository, jobRepo repository.JobRepository, logger *logger.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		jobRepo:      jobRepo,
		logger:       logger,
		now:          time.Now,
	}
}

type scheduleService struct {
	scheduleRepo repository.TaskScheduleRepository
	jobRepo      repository.JobRepository
	logger       *logger.Logger
	now          func() time.Time
}

// CreateSchedule attaches a new cron trigger to an existing job.
func (s *scheduleService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	sched, err := parseCron(req.CronExpression)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(ctx, req.JobID)
	if err != nil {
		return nil, notFound(err, "job", req.JobID)
	}

	schedule := &entity.TaskSchedule{
		JobID:          req.JobID,
		CronExpression: req.CronExpression,
		IsActive:       req.IsActive,
		NextExecution:  sql.NullTime{Time: sched.Next(s.now()), Valid: true},
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		s.logger.Error("Failed to create schedule", logger.ErrorField(err))
		return nil, err
	}

	s.logger.Info("Schedule created successfully", logger.Field("schedule_id", schedule.ID))
	return mapToScheduleResponse(schedule, string(job.Type)), nil
}

// GetScheduleByID retrieves a schedule by its ID.
func (s *scheduleService) GetScheduleByID(ctx context.Context, id uint) (*dto.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "schedule", id)
	}
	return mapToScheduleResponse(schedule, s.functionName(ctx, schedule.JobID)), nil
}

// GetAllSchedules retrieves all schedules.
func (s *scheduleService) GetAllSchedules(ctx context.Context) ([]*dto.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all schedules", logger.ErrorField(err))
		return nil, err
	}

	functions := make(map[uint]string)
	if jobs, err := s.jobRepo.FindAll(ctx); err == nil {
		for _, job := range jobs {
			functions[job.ID] = string(job.Type)
		}
	} else {
		s.logger.Warn("Failed to resolve job types for schedules", logger.ErrorField(err))
	}

	scheduleResponses := make([]*dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		scheduleResponses = append(scheduleResponses, mapToScheduleResponse(&schedules[i], functions[schedules[i].JobID]))
	}
	return scheduleResponses, nil
}

// UpdateSchedule applies the fields present in req. A changed cron expression recomputes the
// next execution, and so does reactivating a schedule whose next execution already passed.
func (s *scheduleService) UpdateSchedule(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	if req.CronExpression == nil && req.IsActive == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	schedule, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "schedule", id)
	}

	now := s.now()
	recompute := !schedule.NextExecution.Valid
	if req.CronExpression != nil && *req.CronExpression != schedule.CronExpression {
		schedule.CronExpression = *req.CronExpression
		recompute = true
	}
	if req.IsActive != nil {
		if *req.IsActive && !schedule.IsActive && schedule.NextExecution.Time.Before(now) {
			recompute = true
		}
		schedule.IsActive = *req.IsActive
	}

	sched, err := parseCron(schedule.CronExpression)
	if err != nil {
		return nil, err
	}
	if recompute {
		schedule.NextExecution = sql.NullTime{Time: sched.Next(now), Valid: true}
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		s.logger.Error("Failed to update schedule", logger.ErrorField(err), logger.Field("schedule_id", id))
		return nil, err
	}

	s.logger.Info("Schedule updated successfully", logger.Field("schedule_id", id))
	return mapToScheduleResponse(schedule, s.functionName(ctx, schedule.JobID)), nil
}

// DeleteSchedule deletes a schedule by its ID.
func (s *scheduleService) DeleteSchedule(ctx context.Context, id uint) error {
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete schedule", logger.ErrorField(err), logger.Field("schedule_id", id))
		return notFound(err, "schedule", id)
	}
	s.logger.Info("Schedule deleted successfully", logger.Field("schedule_id", id))
	return nil
}

// functionName resolves the job type a schedule triggers; an unreadable job leaves it empty.
func (s *scheduleService) functionName(ctx context.Context, jobID uint) string {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return ""
	}
	return string(job.Type)
}

// mapToScheduleResponse maps an entity.TaskSchedule to a dto.ScheduleResponse.
func mapToScheduleResponse(schedule *entity.TaskSchedule, functionName string) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:             schedule.ID,
		JobID:          schedule.JobID,
		FunctionName:   functionName,
		CronExpression: schedule.CronExpression,
		IsActive:       schedule.IsActive,
		NextExecution:  schedule.NextExecution,
		LastExecution:  schedule.LastExecution,
		CreatedAt:      schedule.CreatedAt,
		UpdatedAt:      schedule.UpdatedAt,
	}
}
