package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
)

// Store is the key-value backend of the persisted client state.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// FileStore keeps state in an in-memory cache and mirrors it to a file on Flush.
type FileStore struct {
	mu   sync.Mutex
	path string
	mem  *cache.Cache
}

// NewFileStore loads path when it exists. An unreadable file starts an empty store.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, mem: cache.New(cache.NoExpiration, 0)}
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to stat state file: %w", err)
	}
	if err := s.mem.LoadFile(path); err != nil {
		// Corrupt state is discarded; callers fall back to defaults.
		s.mem.Flush()
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.mem.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mem.Set(key, value, cache.NoExpiration)
	return nil
}

// Flush writes the store to its file.
func (s *FileStore) Flush() error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mem.SaveFile(s.path); err != nil {
		return fmt.Errorf("failed to save state file: %w", err)
	}
	return nil
}

// RedisStore keeps state under a key prefix in Redis, for clients sharing one profile.
type RedisStore struct {
	client goredis.Cmdable
	prefix string
}

func NewRedisStore(client goredis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
