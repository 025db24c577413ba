package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// Storage keys of the persisted client state.
const (
	KeyLatencyHistory = "adaptive_debounce_latency"
	KeySearchCache    = "search_cache_assets"
	KeyQueryMemo      = "search_cache_queries"
)

// slot describes one persisted value: how to validate it and what to use instead.
type slot[T any] struct {
	key      string
	validate func(T) (T, bool)
	fallback func() T
}

var (
	latencySlot = slot[[]int]{
		key:      KeyLatencyHistory,
		validate: validLatencies,
		fallback: func() []int { return []int{} },
	}
	assetsSlot = slot[[]CachedAsset]{
		key:      KeySearchCache,
		validate: validAssets,
		fallback: PopularAssets,
	}
	memoSlot = slot[map[string][]CachedAsset]{
		key:      KeyQueryMemo,
		validate: validMemo,
		fallback: func() map[string][]CachedAsset { return map[string][]CachedAsset{} },
	}
)

// State reads and writes the debounce history and search cache. Reads never fail: missing or
// malformed data yields the default value.
type State struct {
	store  Store
	logger *logger.Logger
}

func NewState(store Store, log *logger.Logger) *State {
	return &State{store: store, logger: log}
}

func load[T any](ctx context.Context, s *State, sl slot[T]) T {
	raw, ok, err := s.store.Get(ctx, sl.key)
	if err != nil {
		s.logger.Debug("Failed to read client state", logger.StringField("key", sl.key), logger.ErrorField(err))
		return sl.fallback()
	}
	if !ok {
		return sl.fallback()
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return sl.fallback()
	}
	v, ok = sl.validate(v)
	if !ok {
		return sl.fallback()
	}
	return v
}

func save[T any](ctx context.Context, s *State, sl slot[T], v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", sl.key, err)
	}
	return s.store.Set(ctx, sl.key, raw)
}

func (s *State) LoadLatencies(ctx context.Context) []int {
	return load(ctx, s, latencySlot)
}

func (s *State) SaveLatencies(ctx context.Context, samples []int) error {
	return save(ctx, s, latencySlot, samples)
}

func (s *State) LoadAssets(ctx context.Context) []CachedAsset {
	return load(ctx, s, assetsSlot)
}

func (s *State) LoadMemo(ctx context.Context) map[string][]CachedAsset {
	return load(ctx, s, memoSlot)
}

// SaveCache persists both the index and the memo of c.
func (s *State) SaveCache(ctx context.Context, c *Cache) error {
	assets, memo := c.Snapshot()
	if err := save(ctx, s, assetsSlot, assets); err != nil {
		return err
	}
	return save(ctx, s, memoSlot, memo)
}

// RestoreCache builds a Cache from persisted state.
func (s *State) RestoreCache(ctx context.Context) *Cache {
	return NewCache(s.LoadAssets(ctx), s.LoadMemo(ctx))
}

// RestoreHistory builds a LatencyHistory from persisted state.
func (s *State) RestoreHistory(ctx context.Context) *LatencyHistory {
	return NewLatencyHistory(s.LoadLatencies(ctx))
}

func validLatencies(v []int) ([]int, bool) {
	if v == nil {
		return nil, false
	}
	for _, ms := range v {
		if ms < 0 || ms > MaxLatencyMs {
			return nil, false
		}
	}
	if len(v) > LatencyCapacity {
		v = v[len(v)-LatencyCapacity:]
	}
	return v, true
}

func validAsset(a CachedAsset) bool {
	return strings.TrimSpace(a.Ticker) != "" && a.SearchCount >= 0
}

func validAssets(v []CachedAsset) ([]CachedAsset, bool) {
	if len(v) == 0 {
		return nil, false
	}
	for _, a := range v {
		if !validAsset(a) {
			return nil, false
		}
	}
	return v, true
}

func validMemo(v map[string][]CachedAsset) (map[string][]CachedAsset, bool) {
	if v == nil {
		return nil, false
	}
	for _, entries := range v {
		for _, a := range entries {
			if !validAsset(a) {
				return nil, false
			}
		}
	}
	return v, true
}
