package search

import (
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/brunotrento11/Teste-sub000/pkg/textnorm"
)

const (
	CacheCapacity       = 100
	DefaultSuggestions  = 5
	memoResultsPerQuery = 10
	minQueryLength      = 2
)

// Match scores, highest first.
const (
	scoreTickerPrefix   = 100
	scoreNamePrefix     = 85
	scoreIssuerPrefix   = 75
	scoreTickerContains = 60
	scoreNameContains   = 40
	scoreIssuerContains = 30
)

// CachedAsset is one entry of the local suggestion index.
type CachedAsset struct {
	Ticker       string    `json:"ticker"`
	DisplayName  string    `json:"display_name"`
	AssetType    string    `json:"asset_type"`
	Issuer       string    `json:"issuer,omitempty"`
	LastSearched time.Time `json:"last_searched"`
	SearchCount  int       `json:"search_count"`
}

// Cache is the bounded, frequency-ranked local asset index plus the per-query memo.
type Cache struct {
	mu     sync.RWMutex
	assets []CachedAsset
	memo   map[string][]CachedAsset
	now    func() time.Time
}

// NewCache restores a cache. Nil assets seed the popular list.
func NewCache(assets []CachedAsset, memo map[string][]CachedAsset) *Cache {
	if assets == nil {
		assets = PopularAssets()
	}
	if memo == nil {
		memo = map[string][]CachedAsset{}
	}
	c := &Cache{assets: assets, memo: memo, now: time.Now}
	c.sortAndTrim()
	return c
}

// NormalizeQuery folds case and diacritics and trims whitespace.
func NormalizeQuery(q string) string {
	return textnorm.Fold(strings.TrimSpace(q))
}

// Suggestions returns up to limit cached entries matching query. Queries shorter than two
// characters return nothing; memoized queries bypass scoring.
func (c *Cache) Suggestions(query string, limit int) []CachedAsset {
	q := NormalizeQuery(query)
	if utf8.RuneCountInString(q) < minQueryLength {
		return []CachedAsset{}
	}
	if limit <= 0 {
		limit = DefaultSuggestions
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if hit, ok := c.memo[q]; ok {
		return append([]CachedAsset{}, hit[:min(limit, len(hit))]...)
	}

	type scored struct {
		asset CachedAsset
		score int
	}
	var matches []scored
	for _, a := range c.assets {
		if s := matchScore(a, q); s > 0 {
			matches = append(matches, scored{asset: a, score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].asset.SearchCount > matches[j].asset.SearchCount
	})

	out := make([]CachedAsset, 0, min(limit, len(matches)))
	for i := 0; i < len(matches) && i < limit; i++ {
		out = append(out, matches[i].asset)
	}
	return out
}

// matchScore ranks a on q. Tickers are only lowercased; names and issuers are folded.
func matchScore(a CachedAsset, q string) int {
	ticker := strings.ToLower(a.Ticker)
	name := textnorm.Fold(a.DisplayName)
	issuer := textnorm.Fold(a.Issuer)

	switch {
	case strings.HasPrefix(ticker, q):
		return scoreTickerPrefix
	case strings.HasPrefix(name, q):
		return scoreNamePrefix
	case issuer != "" && strings.HasPrefix(issuer, q):
		return scoreIssuerPrefix
	case strings.Contains(ticker, q):
		return scoreTickerContains
	case strings.Contains(name, q):
		return scoreNameContains
	case issuer != "" && strings.Contains(issuer, q):
		return scoreIssuerContains
	default:
		return 0
	}
}

// Update memoizes the first results for query and merges them into the index.
func (c *Cache) Update(query string, results []CachedAsset) {
	q := NormalizeQuery(query)
	if utf8.RuneCountInString(q) < minQueryLength || len(results) == 0 {
		return
	}

	now := c.now()
	entries := make([]CachedAsset, 0, min(memoResultsPerQuery, len(results)))
	for i := 0; i < len(results) && i < memoResultsPerQuery; i++ {
		e := results[i]
		e.SearchCount = 1
		e.LastSearched = now
		entries = append(entries, e)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.memo[q] = entries

	index := make(map[string]int, len(c.assets))
	for i, a := range c.assets {
		index[a.Ticker] = i
	}
	for _, e := range entries {
		if i, ok := index[e.Ticker]; ok {
			c.assets[i].SearchCount++
			c.assets[i].LastSearched = now
			continue
		}
		index[e.Ticker] = len(c.assets)
		c.assets = append(c.assets, e)
	}
	c.sortAndTrim()
}

// Clear resets the index to the popular list and forgets all memoized queries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assets = PopularAssets()
	c.memo = map[string][]CachedAsset{}
}

// Snapshot copies the index and memo for persistence.
func (c *Cache) Snapshot() ([]CachedAsset, map[string][]CachedAsset) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	assets := append([]CachedAsset{}, c.assets...)
	memo := make(map[string][]CachedAsset, len(c.memo))
	for k, v := range c.memo {
		memo[k] = append([]CachedAsset{}, v...)
	}
	return assets, memo
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.assets)
}

func (c *Cache) sortAndTrim() {
	sort.SliceStable(c.assets, func(i, j int) bool {
		return c.assets[i].SearchCount > c.assets[j].SearchCount
	})
	if len(c.assets) > CacheCapacity {
		c.assets = c.assets[:CacheCapacity]
	}
}
