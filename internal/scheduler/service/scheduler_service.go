package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	executordto "github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/config"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/repository"
	"github.com/brunotrento11/Teste-sub000/pkg/common"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// SchedulerService defines the interface for the job scheduling service.
type SchedulerService interface {
	Start(ctx context.Context)
	ProcessJobs(ctx context.Context)
}

// StreamPublisher is the slice of the redis client the scheduler needs.
type StreamPublisher interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(jobRepo repository.JobRepository, scheduleRepo repository.TaskScheduleRepository, publisher StreamPublisher, logger *logger.Logger, cfg *config.Config) SchedulerService {
	return &schedulerService{
		jobRepo:      jobRepo,
		scheduleRepo: scheduleRepo,
		publisher:    publisher,
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
	}
}

type schedulerService struct {
	jobRepo      repository.JobRepository
	scheduleRepo repository.TaskScheduleRepository
	publisher    StreamPublisher
	logger       *logger.Logger
	cfg          *config.Config
	now          func() time.Time
}

// Start begins the periodic job processing loop.
func (s *schedulerService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Scheduler.PollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler service stopping")
			return
		case <-ticker.C:
			s.ProcessJobs(ctx)
		}
	}
}

// ProcessJobs finds active schedules that are due and enqueues the first chunk of their job.
func (s *schedulerService) ProcessJobs(ctx context.Context) {
	now := s.now()
	schedules, err := s.scheduleRepo.FindDue(ctx, now)
	if err != nil {
		s.logger.Error("Failed to find jobs to schedule", logger.ErrorField(err))
		return
	}

	for i := range schedules {
		s.publishTask(ctx, &schedules[i], now)
	}
}

// publishTask enqueues one invocation and advances the schedule. A failed publish leaves the
// schedule due so the next poll retries it.
func (s *schedulerService) publishTask(ctx context.Context, schedule *entity.TaskSchedule, now time.Time) {
	cronSchedule, err := parseCron(schedule.CronExpression)
	if err != nil {
		s.logger.Error("Failed to parse cron expression", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	job, err := s.jobRepo.FindByID(ctx, schedule.JobID)
	if err != nil {
		s.logger.Error("Failed to load job for schedule", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	inv, err := buildInvocation(job, now)
	if err != nil {
		s.logger.Error("Failed to build invocation", logger.ErrorField(err), logger.Field("job_id", job.ID))
		return
	}

	taskPayload, err := json.Marshal(inv)
	if err != nil {
		s.logger.Error("Failed to marshal task payload", logger.ErrorField(err), logger.Field("job_id", job.ID))
		return
	}

	if err := s.publisher.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamRiskJobInvocation,
		Values: map[string]interface{}{"payload": taskPayload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
		Approx: true,
	}).Err(); err != nil {
		s.logger.Error("Failed to enqueue task", logger.ErrorField(err), logger.Field("job_id", job.ID))
		return
	}

	s.logger.Info("Task published successfully",
		logger.Field("job_id", job.ID),
		logger.StringField("function_name", inv.FunctionName),
	)

	if err := s.scheduleRepo.MarkExecuted(ctx, schedule.ID, now, cronSchedule.Next(now)); err != nil {
		s.logger.Error("Failed to update next execution time", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
	}
}

// buildInvocation starts a fresh chunk cycle: the stored payload with chunk 0 and the publish
// time as snapshot, so a redelivered message resumes the same cycle.
func buildInvocation(job *entity.Job, now time.Time) (executordto.StreamInvocation, error) {
	var req executordto.InvocationRequest
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &req); err != nil {
			return executordto.StreamInvocation{}, fmt.Errorf("failed to decode job payload: %w", err)
		}
	}
	req.AsOf = nil
	if req.Ticker == nil {
		first := 0
		asOf := now.Truncate(time.Second)
		req.ChunkIndex = &first
		req.AsOf = &asOf
	}

	return executordto.StreamInvocation{
		FunctionName: string(job.Type),
		JobID:        job.ID,
		Request:      req,
		EnqueuedAt:   now,
	}, nil
}
