package service

import (
	"context"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/repository"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// ExecutionService exposes the execution log written by the executor.
type ExecutionService interface {
	List(ctx context.Context, req *dto.ListExecutionsRequest) (*dto.ExecutionListResponse, error)
	GetByID(ctx context.Context, id uint) (*entity.ExecutionRecord, error)
	ListByJob(ctx context.Context, jobID uint, req *dto.ListExecutionsRequest) (*dto.ExecutionListResponse, error)
}

// NewExecutionService creates a new execution log service.
func NewExecutionService(recordRepo repository.ExecutionRecordRepository, jobRepo repository.JobRepository, logger *logger.Logger) ExecutionService {
	return &executionService{
		recordRepo: recordRepo,
		jobRepo:    jobRepo,
		logger:     logger,
	}
}

type executionService struct {
	recordRepo repository.ExecutionRecordRepository
	jobRepo    repository.JobRepository
	logger     *logger.Logger
}

func (s *executionService) List(ctx context.Context, req *dto.ListExecutionsRequest) (*dto.ExecutionListResponse, error) {
	items, total, err := s.recordRepo.List(ctx, repository.ExecutionFilter{
		FunctionName: req.FunctionName,
		Status:       req.Status,
		Limit:        clampLimit(req.Limit),
		Offset:       max(req.Offset, 0),
	})
	if err != nil {
		s.logger.Error("Failed to list executions", logger.ErrorField(err))
		return nil, err
	}
	return &dto.ExecutionListResponse{Items: items, Total: total}, nil
}

func (s *executionService) GetByID(ctx context.Context, id uint) (*entity.ExecutionRecord, error) {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "execution", id)
	}
	return record, nil
}

// ListByJob lists the executions of the function a job runs.
func (s *executionService) ListByJob(ctx context.Context, jobID uint, req *dto.ListExecutionsRequest) (*dto.ExecutionListResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "job", jobID)
	}
	filtered := *req
	filtered.FunctionName = string(job.Type)
	return s.List(ctx, &filtered)
}
