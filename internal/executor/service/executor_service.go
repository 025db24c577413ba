package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/pkg/common"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/telegram"
	"github.com/brunotrento11/Teste-sub000/pkg/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ExecutorService consumes risk job invocations from the Redis stream.
type ExecutorService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
	Enqueue(ctx context.Context, inv dto.StreamInvocation) error
}

// NewExecutorService creates a new ExecutorService.
func NewExecutorService(
	cfg *config.Config,
	redisClient *redis.Client,
	jobRepo repository.JobRepository,
	riskJobService RiskJobService,
	notifier telegram.Notifier,
	log *logger.Logger,
) ExecutorService {
	return &executorService{
		cfg:            cfg,
		redisClient:    redisClient,
		jobRepo:        jobRepo,
		riskJobService: riskJobService,
		telegramBot:    notifier,
		logger:         log,
	}
}

type executorService struct {
	cfg            *config.Config
	redisClient    *redis.Client
	jobRepo        repository.JobRepository
	riskJobService RiskJobService
	telegramBot    telegram.Notifier
	logger         *logger.Logger
}

// ProcessTask reads one invocation and runs it. The message is acknowledged once the chunk
// terminated or was found locked by another worker; otherwise it stays pending for ProcessRetries.
func (s *executorService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamRiskJobInvocation, ">"},
		Count:    1,
		Block:    2 * time.Second,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}
	message := streams[0].Messages[0]

	inv, err := decodeInvocation(message)
	if err != nil {
		s.logger.Error("Dropping malformed invocation", logger.ErrorField(err), logger.Field("message_id", message.ID))
		if err := s.AckNDel(ctx, message.ID); err != nil {
			s.logger.Error("Failed to acknowledge malformed message", logger.ErrorField(err), logger.Field("message_id", message.ID))
		}
		return
	}

	if err := s.execute(ctx, inv); err != nil {
		return
	}
	if err := s.AckNDel(ctx, message.ID); err != nil {
		s.logger.Error("Failed to acknowledge and delete invocation", logger.ErrorField(err), logger.Field("message_id", message.ID))
	}
}

// execute runs the invocation and re-enqueues the continuation chunk. A nil error means the
// message is done with.
func (s *executorService) execute(ctx context.Context, inv dto.StreamInvocation) error {
	timeout := s.cfg.Executor.RedisStreamRiskJobTimeout
	if job := s.definition(ctx, inv); job != nil && job.Timeout > 0 {
		timeout = time.Duration(job.Timeout) * time.Second
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info("Processing risk job invocation",
		logger.StringField("function", inv.FunctionName),
		logger.Field("chunk_index", inv.Request.ChunkIndex))

	resp, err := s.riskJobService.Invoke(execCtx, inv.FunctionName, inv.Request)
	switch {
	case errors.Is(err, ErrJobLocked):
		s.logger.Info("Chunk already running elsewhere, dropping invocation", logger.StringField("function", inv.FunctionName))
		return nil
	case errors.Is(err, ErrUnknownJob), errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrAssetNotFound):
		s.logger.Error("Invocation rejected", logger.ErrorField(err), logger.StringField("function", inv.FunctionName))
		return nil
	case err != nil:
		s.logger.Error("Risk job invocation failed", logger.ErrorField(err), logger.StringField("function", inv.FunctionName))
		return err
	}

	if !s.cfg.Executor.AutoContinue {
		return nil
	}
	if next := resp.Next(inv.Request); next != nil {
		cont := dto.StreamInvocation{FunctionName: inv.FunctionName, JobID: inv.JobID, Request: *next, EnqueuedAt: utils.TimeNowBRT()}
		if err := s.Enqueue(ctx, cont); err != nil {
			s.logger.Error("Failed to enqueue next chunk", logger.ErrorField(err), logger.StringField("function", inv.FunctionName))
			return err
		}
	}
	return nil
}

// definition finds the job an invocation belongs to: by ID when scheduled, otherwise the first
// definition of the same function. Ad-hoc invocations without any definition get nil.
func (s *executorService) definition(ctx context.Context, inv dto.StreamInvocation) *entity.Job {
	var (
		job *entity.Job
		err error
	)
	if inv.JobID != 0 {
		job, err = s.jobRepo.FindByID(ctx, inv.JobID)
	} else {
		job, err = s.jobRepo.FindByType(ctx, entity.JobType(inv.FunctionName))
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("Failed to load job definition", logger.StringField("function", inv.FunctionName), logger.ErrorField(err))
		}
		return nil
	}
	return job
}

// Enqueue publishes an invocation on the stream.
func (s *executorService) Enqueue(ctx context.Context, inv dto.StreamInvocation) error {
	payload, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to marshal invocation: %w", err)
	}
	return s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamRiskJobInvocation,
		MaxLen: s.cfg.Redis.StreamMaxLen,
		Approx: true,
		Values: map[string]interface{}{"payload": string(payload)},
	}).Err()
}

func (s *executorService) AckNDel(ctx context.Context, messageID string) error {
	if err := s.redisClient.XAck(ctx, common.RedisStreamRiskJobInvocation, common.RedisStreamGroup, messageID).Err(); err != nil {
		return err
	}
	return s.redisClient.XDel(ctx, common.RedisStreamRiskJobInvocation, messageID).Err()
}

// ProcessRetries claims one invocation idle for longer than the configured duration and reruns it,
// or drops it with a Telegram alert once the retry budget is spent.
func (s *executorService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamRiskJobInvocation,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Executor.RedisStreamRiskJobMaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()
	if err != nil {
		s.logger.Error("Failed to claim risk job invocation on retry", logger.ErrorField(err))
		return
	}
	if len(msgs) == 0 {
		s.logger.Debug("Retry No pending messages found", logger.StringField("stream", common.RedisStreamRiskJobInvocation))
		return
	}
	msg := msgs[0]

	pendingInfo, err := s.redisClient.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamRiskJobInvocation,
		Group:  common.RedisStreamGroup,
		Start:  msg.ID,
		End:    msg.ID,
		Count:  1,
	}).Result()
	if err != nil {
		s.logger.Error("Failed to get pending info", logger.ErrorField(err))
		return
	}
	if len(pendingInfo) == 0 {
		s.logger.Warn("pending msg not found, but exist on xautoclaim", logger.StringField("message_id", msg.ID))
		return
	}

	inv, err := decodeInvocation(msg)
	if err != nil {
		s.logger.Error("Dropping malformed invocation", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		if err := s.AckNDel(ctx, msg.ID); err != nil {
			s.logger.Error("Failed to acknowledge malformed message", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		}
		return
	}

	if pendingInfo[0].RetryCount >= int64(s.cfg.Executor.RedisStreamRiskJobMaxRetry) {
		s.logger.Error("pending msg retry count exceeded",
			logger.StringField("message_id", msg.ID),
			logger.StringField("function", inv.FunctionName),
			logger.IntField("retry_count", int(pendingInfo[0].RetryCount)),
			logger.IntField("max_retry", s.cfg.Executor.RedisStreamRiskJobMaxRetry))

		payload, _ := json.Marshal(inv.Request)
		alert := telegram.FormatErrorAlertMessage(utils.TimeNowBRT(), "Risk job retry exhausted",
			fmt.Sprintf("Invocation of %s exceeded %d retries", inv.FunctionName, s.cfg.Executor.RedisStreamRiskJobMaxRetry), string(payload))
		if err := s.telegramBot.SendMessage(alert); err != nil {
			s.logger.Error("Failed to send telegram message retry exceeded", logger.ErrorField(err))
		}
		if err := s.AckNDel(ctx, msg.ID); err != nil {
			s.logger.Error("Failed to acknowledge and delete invocation", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		}
		return
	}

	if err := s.execute(ctx, inv); err != nil {
		return
	}
	if err := s.AckNDel(ctx, msg.ID); err != nil {
		s.logger.Error("Failed to acknowledge and delete invocation", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}
	s.logger.Info("Retry risk job invocation processed successfully", logger.StringField("function", inv.FunctionName))
}

func decodeInvocation(msg redis.XMessage) (dto.StreamInvocation, error) {
	var inv dto.StreamInvocation
	raw, ok := msg.Values["payload"].(string)
	if !ok {
		return inv, fmt.Errorf("field 'payload' not found or not a string in stream message")
	}
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		return inv, fmt.Errorf("failed to unmarshal invocation: %w", err)
	}
	if inv.FunctionName == "" {
		return inv, fmt.Errorf("invocation without function name")
	}
	return inv, nil
}
