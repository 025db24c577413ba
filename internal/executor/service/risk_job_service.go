package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/executor/strategy"
	"github.com/brunotrento11/Teste-sub000/internal/risk/anomaly"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/telegram"

	"gorm.io/datatypes"
)

const maxChunkSize = 500

var (
	ErrUnknownJob     = errors.New("unknown risk job")
	ErrJobLocked      = errors.New("chunk is already being processed")
	ErrAssetNotFound  = errors.New("asset not found")
	ErrInvalidRequest = errors.New("invalid invocation request")
)

// RiskJobService runs batch risk job invocations and reports job health.
type RiskJobService interface {
	Invoke(ctx context.Context, functionName string, req dto.InvocationRequest) (*dto.InvocationResponse, error)
	Health(ctx context.Context, functionName string) (*anomaly.HealthReport, error)
}

type riskJobService struct {
	cfg        *config.Config
	logger     *logger.Logger
	records    repository.ExecutionRecordRepository
	alerts     repository.AnomalyAlertRepository
	locks      repository.ChunkLockRepository
	notifier   telegram.Notifier
	strategies map[entity.JobType]strategy.RiskJobStrategy
	syncs      map[entity.JobType]strategy.SyncStrategy
	owner      string

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRiskJobService creates a new RiskJobService.
func NewRiskJobService(
	cfg *config.Config,
	log *logger.Logger,
	records repository.ExecutionRecordRepository,
	alerts repository.AnomalyAlertRepository,
	locks repository.ChunkLockRepository,
	notifier telegram.Notifier,
	strategies []strategy.RiskJobStrategy,
	syncs []strategy.SyncStrategy,
) RiskJobService {
	strategyMap := make(map[entity.JobType]strategy.RiskJobStrategy)
	for _, s := range strategies {
		strategyMap[s.GetType()] = s
	}
	syncMap := make(map[entity.JobType]strategy.SyncStrategy)
	for _, s := range syncs {
		syncMap[s.GetType()] = s
	}

	host, _ := os.Hostname()
	return &riskJobService{
		cfg:        cfg,
		logger:     log,
		records:    records,
		alerts:     alerts,
		locks:      locks,
		notifier:   notifier,
		strategies: strategyMap,
		syncs:      syncMap,
		owner:      fmt.Sprintf("%s-%d", host, os.Getpid()),
		now:        time.Now,
		sleep:      sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Invoke runs one chunk of a batch risk job, or a full pass of a sync job.
func (s *riskJobService) Invoke(ctx context.Context, functionName string, req dto.InvocationRequest) (*dto.InvocationResponse, error) {
	jobType := entity.JobType(functionName)
	if sync, ok := s.syncs[jobType]; ok {
		return s.runSync(ctx, sync)
	}
	st, ok := s.strategies[jobType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, functionName)
	}

	start := s.now()
	req, err := s.normalize(req, start)
	if err != nil {
		return nil, err
	}
	chunkIndex, chunkSize, asOf := *req.ChunkIndex, *req.ChunkSize, *req.AsOf

	sel := repository.Selection{
		AsOf:             asOf,
		StaleBefore:      asOf.Add(-s.cfg.RiskJobs.StaleAfter(jobType)),
		PrioritizeLiquid: req.PrioritizeLiquid,
	}
	execType := entity.ExecutionTypeChunk
	if req.Ticker != nil && *req.Ticker != "" {
		sel.Ticker = *req.Ticker
		execType = entity.ExecutionTypeSingle
	}

	scope := repository.LockScope{FunctionName: functionName, AsOf: asOf, ChunkIndex: chunkIndex, Ticker: sel.Ticker}
	acquired, err := s.locks.Acquire(ctx, scope, s.owner)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s chunk %d", ErrJobLocked, functionName, chunkIndex)
	}
	defer func() {
		if err := s.locks.Release(context.WithoutCancel(ctx), scope, s.owner); err != nil {
			s.logger.WarnContext(ctx, "Failed to release chunk lock", logger.ErrorField(err))
		}
	}()

	resp := &dto.InvocationResponse{ChunkIndex: chunkIndex, AsOf: asOf}

	total, err := st.CountPending(ctx, sel)
	if err != nil {
		record := s.newRecord(functionName, execType, chunkIndex, start, datatypes.JSONMap{"as_of": asOf})
		if createErr := s.records.Create(ctx, record); createErr != nil {
			return nil, fmt.Errorf("failed to create execution record: %w", createErr)
		}
		return s.abort(ctx, record, resp, entity.RiskJobVocabulary, fmt.Errorf("failed to count pending assets: %w", err))
	}
	resp.TotalPending = total

	plan := PlanChunk(total, chunkIndex, chunkSize)
	resp.TotalChunks = plan.TotalChunks
	if execType == entity.ExecutionTypeSingle && total == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, sel.Ticker)
	}
	if !plan.InRange {
		s.logger.InfoContext(ctx, "Nothing to process for chunk",
			logger.StringField("function", functionName),
			logger.IntField("chunk_index", chunkIndex),
			logger.IntField("total_chunks", plan.TotalChunks))
		resp.Success = true
		resp.DurationMs = s.now().Sub(start).Milliseconds()
		return resp, nil
	}

	record := s.newRecord(functionName, execType, chunkIndex, start, datatypes.JSONMap{
		"as_of":             asOf,
		"chunk_size":        chunkSize,
		"total_pending":     total,
		"total_chunks":      plan.TotalChunks,
		"process_all":       req.ProcessAll,
		"prioritize_liquid": req.PrioritizeLiquid,
	})
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create execution record: %w", err)
	}
	resp.ExecutionID = record.ID

	assets, err := st.ListPending(ctx, sel, plan.Offset, plan.Limit)
	if err != nil {
		return s.abort(ctx, record, resp, entity.RiskJobVocabulary, fmt.Errorf("failed to list pending assets: %w", err))
	}

	tally := newTally(s.cfg.RiskJobs.MaxErrorDetails)
	for i, asset := range assets {
		if i > 0 {
			if err := s.sleep(ctx, s.cfg.RiskJobs.FetchDelay); err != nil {
				tally.interrupt(i, len(assets), err)
				break
			}
		}

		out, err := st.Process(ctx, asset, s.now())
		switch {
		case err == nil:
			tally.success(asset, out)
		case errors.Is(err, repository.ErrAssetUnavailable):
			tally.skip(asset, err)
		default:
			s.logger.WarnContext(ctx, "Asset processing failed",
				logger.StringField("function", functionName),
				logger.StringField("code", asset.Code),
				logger.ErrorField(err))
			tally.fail(asset, err)
		}
	}

	tally.apply(record, entity.RiskJobVocabulary)
	resp.HasMoreChunks = plan.HasMore
	resp.NextChunkIndex = plan.NextIndex
	return s.finish(ctx, record, resp), nil
}

func (s *riskJobService) normalize(req dto.InvocationRequest, start time.Time) (dto.InvocationRequest, error) {
	if req.ChunkIndex == nil {
		zero := 0
		req.ChunkIndex = &zero
	}
	if *req.ChunkIndex < 0 {
		return req, fmt.Errorf("%w: chunkIndex must not be negative", ErrInvalidRequest)
	}
	if req.ChunkSize == nil || *req.ChunkSize <= 0 {
		size := s.cfg.RiskJobs.DefaultChunkSize
		req.ChunkSize = &size
	}
	if *req.ChunkSize > maxChunkSize {
		return req, fmt.Errorf("%w: chunkSize must not exceed %d", ErrInvalidRequest, maxChunkSize)
	}
	if req.AsOf == nil || req.AsOf.IsZero() {
		asOf := start.Truncate(time.Second)
		req.AsOf = &asOf
	}
	return req, nil
}

func (s *riskJobService) newRecord(functionName string, execType entity.ExecutionType, chunkIndex int, start time.Time, metadata datatypes.JSONMap) *entity.ExecutionRecord {
	record := &entity.ExecutionRecord{
		FunctionName:  functionName,
		ExecutionType: execType,
		Status:        entity.StatusRunning,
		StartedAt:     start,
		Metadata:      metadata,
	}
	if execType == entity.ExecutionTypeChunk {
		idx := chunkIndex
		record.ChunkIndex = &idx
	}
	return record
}

// abort finalizes a batch-level failure: no asset of the chunk is processed.
func (s *riskJobService) abort(ctx context.Context, record *entity.ExecutionRecord, resp *dto.InvocationResponse, vocab entity.StatusVocabulary, cause error) (*dto.InvocationResponse, error) {
	s.logger.ErrorContext(ctx, "Risk job aborted", logger.StringField("function", record.FunctionName), logger.ErrorField(cause))
	record.Status = vocab.Failure
	record.ErrorDetails = datatypes.NewJSONType([]string{cause.Error()})
	record.Metadata["error"] = cause.Error()
	resp.ExecutionID = record.ID
	resp = s.finish(ctx, record, resp)
	resp.Error = cause.Error()
	return resp, cause
}

// finish writes the terminal record, runs anomaly detection and fills the response.
func (s *riskJobService) finish(ctx context.Context, record *entity.ExecutionRecord, resp *dto.InvocationResponse) *dto.InvocationResponse {
	ctx = context.WithoutCancel(ctx)
	completed := s.now()
	record.CompletedAt = &completed
	record.DurationMs = completed.Sub(record.StartedAt).Milliseconds()

	if err := s.records.Update(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update execution record", logger.ErrorField(err), logger.Field("execution_id", record.ID))
	} else {
		s.detectAnomalies(ctx, record)
	}

	resp.ExecutionID = record.ID
	resp.Status = string(record.Status)
	resp.Success = record.Status.Class() != entity.ClassFailure
	resp.Processed = record.TotalAssetsProcessed
	resp.Skipped = record.TotalAssetsSkipped
	resp.Errors = record.TotalErrors
	resp.DurationMs = record.DurationMs
	resp.ErrorDetails = record.ErrorDetails.Data()

	s.logger.InfoContext(ctx, "Risk job execution finished",
		logger.StringField("function", record.FunctionName),
		logger.StringField("status", string(record.Status)),
		logger.IntField("processed", record.TotalAssetsProcessed),
		logger.IntField("skipped", record.TotalAssetsSkipped),
		logger.IntField("errors", record.TotalErrors),
		logger.Field("duration_ms", record.DurationMs))
	return resp
}

func (s *riskJobService) detectAnomalies(ctx context.Context, record *entity.ExecutionRecord) {
	previous, err := s.records.FindPreviousTerminal(ctx, record)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load previous execution", logger.ErrorField(err))
		return
	}
	baseline, err := s.records.FindPreviousBaseline(ctx, record)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load baseline execution", logger.ErrorField(err))
		return
	}

	alerts := anomaly.Detect(anomaly.Input{Current: *record, Previous: previous, Baseline: baseline}, anomaly.PolicyFor(record.FunctionName))
	if len(alerts) == 0 {
		return
	}
	if err := s.alerts.CreateBatch(ctx, alerts); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store anomaly alerts", logger.ErrorField(err), logger.Field("execution_id", record.ID))
		return
	}

	var notify []entity.AnomalyAlert
	for _, a := range alerts {
		if a.Severity != entity.SeverityInfo {
			notify = append(notify, a)
		}
	}
	for _, msg := range telegram.FormatAnomalyAlertsForTelegram(record.FunctionName, record.ID, notify) {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.ErrorContext(ctx, "Failed to send anomaly alert", logger.ErrorField(err))
		}
	}
}

func (s *riskJobService) runSync(ctx context.Context, sync strategy.SyncStrategy) (*dto.InvocationResponse, error) {
	functionName := string(sync.GetType())
	start := s.now()
	scope := repository.LockScope{FunctionName: functionName}

	acquired, err := s.locks.Acquire(ctx, scope, s.owner)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrJobLocked, functionName)
	}
	defer func() {
		if err := s.locks.Release(context.WithoutCancel(ctx), scope, s.owner); err != nil {
			s.logger.WarnContext(ctx, "Failed to release sync lock", logger.ErrorField(err))
		}
	}()

	record := s.newRecord(functionName, entity.ExecutionTypeSync, 0, start, datatypes.JSONMap{})
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create execution record: %w", err)
	}
	resp := &dto.InvocationResponse{TotalChunks: 1, AsOf: start}

	result, err := sync.Sync(ctx)
	if err != nil {
		record.TotalErrors = result.Errors
		return s.abort(ctx, record, resp, entity.SyncVocabulary, err)
	}

	details := capDetails(result.ErrorDetails, s.cfg.RiskJobs.MaxErrorDetails)
	record.TotalAssetsProcessed = result.Processed
	record.TotalAssetsSkipped = result.Skipped
	record.TotalErrors = result.Errors
	record.DistributionByType = datatypes.NewJSONType(result.DistributionByType)
	record.DistributionByRiskCategory = datatypes.NewJSONType(map[string]int{})
	record.ErrorDetails = datatypes.NewJSONType(details)
	record.Status = entity.SyncVocabulary.Resolve(result.Processed, result.Errors)
	resp.TotalPending = int64(result.Processed + result.Skipped)
	return s.finish(ctx, record, resp), nil
}

// Health reports the state of a job from its last terminal execution and open alerts.
func (s *riskJobService) Health(ctx context.Context, functionName string) (*anomaly.HealthReport, error) {
	jobType := entity.JobType(functionName)
	if _, ok := s.strategies[jobType]; !ok {
		if _, ok := s.syncs[jobType]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownJob, functionName)
		}
	}

	last, err := s.records.FindLatestTerminal(ctx, functionName)
	if err != nil {
		return nil, fmt.Errorf("failed to load last execution: %w", err)
	}
	pending, err := s.alerts.CountUnacknowledged(ctx, functionName)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending alerts: %w", err)
	}

	var anomalies []string
	if last != nil {
		alerts, err := s.alerts.ListByExecution(ctx, last.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load execution alerts: %w", err)
		}
		for _, a := range alerts {
			if a.Severity != entity.SeverityInfo {
				anomalies = append(anomalies, fmt.Sprintf("%s: %s", a.AlertType, a.Message))
			}
		}
	}

	report := anomaly.Evaluate(last, anomalies, pending, anomaly.PolicyFor(functionName), s.now())
	return &report, nil
}
