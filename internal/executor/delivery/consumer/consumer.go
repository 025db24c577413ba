package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/service"
	"github.com/brunotrento11/Teste-sub000/pkg/common"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/redis"
	"github.com/brunotrento11/Teste-sub000/pkg/utils"

	goredis "github.com/redis/go-redis/v9"
)

// RedisConsumer manages the consumption of risk job invocations from a Redis stream.
type RedisConsumer struct {
	cfg             *config.Config
	redisClient     *goredis.Client
	executorService service.ExecutorService
	logger          *logger.Logger
	stopChan        chan struct{}
	wg              sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(
	cfg *config.Config,
	redisClient *goredis.Client,
	executorService service.ExecutorService,
	log *logger.Logger,
) *RedisConsumer {
	return &RedisConsumer{
		cfg:             cfg,
		redisClient:     redisClient,
		executorService: executorService,
		logger:          log,
		stopChan:        make(chan struct{}),
	}
}

// Start ensures the consumer group exists and begins the processing and retry loops.
func (c *RedisConsumer) Start(ctx context.Context) error {
	if err := redis.EnsureGroup(ctx, c.redisClient, common.RedisStreamRiskJobInvocation, common.RedisStreamGroup); err != nil {
		return err
	}
	c.logger.Info("Redis consumer started", logger.StringField("stream", common.RedisStreamRiskJobInvocation))

	c.RegisterStreamHandler(ctx, c.executorService.ProcessTask, common.RedisStreamRiskJobInvocation, c.cfg.Executor.RedisStreamRiskJobTimeout)
	c.RegisterTickerHandler(ctx, c.executorService.ProcessRetries,
		c.cfg.Executor.RedisStreamRiskJobRetryInterval,
		c.cfg.Executor.RedisStreamRiskJobMaxIdleDuration,
		common.RedisStreamRiskJobInvocation+"-retry")
	return nil
}

func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
