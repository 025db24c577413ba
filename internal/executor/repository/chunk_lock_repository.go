package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/pkg/common"
	"github.com/brunotrento11/Teste-sub000/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// LockScope names the work an invocation is about to do.
type LockScope struct {
	FunctionName string
	AsOf         time.Time
	ChunkIndex   int
	Ticker       string
}

// Key renders the Redis key of the scope. Chunk 0 starts a cycle and is keyed by job alone,
// so overlapping cycle starts collide whatever their as_of. Later chunks belong to one
// snapshot and are keyed by it. Single-asset runs lock only their ticker.
func (s LockScope) Key() string {
	switch {
	case s.Ticker != "":
		return fmt.Sprintf(common.RedisKeyTickerLock, s.FunctionName, strings.ToUpper(s.Ticker))
	case s.ChunkIndex == 0:
		return fmt.Sprintf(common.RedisKeyCycleLock, s.FunctionName)
	default:
		return fmt.Sprintf(common.RedisKeyChunkLock, s.FunctionName, s.AsOf.Unix(), s.ChunkIndex)
	}
}

// ChunkLockRepository guards invocation scopes against overlapping runs.
type ChunkLockRepository interface {
	Acquire(ctx context.Context, scope LockScope, owner string) (bool, error)
	Release(ctx context.Context, scope LockScope, owner string) error
}

type chunkLockRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewChunkLockRepository(client *goredis.Client, ttl time.Duration) ChunkLockRepository {
	return &chunkLockRepository{client: client, ttl: ttl}
}

func (r *chunkLockRepository) Acquire(ctx context.Context, scope LockScope, owner string) (bool, error) {
	ok, err := redis.AcquireLock(ctx, r.client, scope.Key(), owner, r.ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire chunk lock: %w", err)
	}
	return ok, nil
}

func (r *chunkLockRepository) Release(ctx context.Context, scope LockScope, owner string) error {
	if _, err := redis.ReleaseLock(ctx, r.client, scope.Key(), owner); err != nil {
		return fmt.Errorf("failed to release chunk lock: %w", err)
	}
	return nil
}
