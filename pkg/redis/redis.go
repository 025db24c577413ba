package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// Client embeds the go-redis client so callers can use the full command set.
type Client struct {
	*goredis.Client
}

// NewClient connects and pings Redis.
func NewClient(cfg Config) (*Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Client{client}, nil
}

// EnsureGroup creates the consumer group (and the stream) when missing.
func EnsureGroup(ctx context.Context, client goredis.Cmdable, stream, group string) error {
	err := client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// AcquireLock sets key to owner if absent. It reports whether the lock was taken.
func AcquireLock(ctx context.Context, client goredis.Cmdable, key, owner string, ttl time.Duration) (bool, error) {
	return client.SetNX(ctx, key, owner, ttl).Result()
}

var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`)

// ReleaseLock deletes key only if it is still held by owner.
func ReleaseLock(ctx context.Context, client goredis.Scripter, key, owner string) (bool, error) {
	n, err := releaseScript.Run(ctx, client, []string{key}, owner).Int64()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	return n == 1, nil
}
