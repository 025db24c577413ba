package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// ScrollThresholdPx is the distance from the bottom that triggers the next page.
const ScrollThresholdPx = 200

// Dialog drives server pagination for the asset search. Every filter change starts a new
// generation; responses from older generations are dropped.
type Dialog struct {
	mu         sync.Mutex
	querier    Querier
	history    *LatencyHistory
	cache      *Cache
	logger     *logger.Logger
	filters    ServerFilters
	rows       []entity.AssetSearchRow
	total      int64
	nextPage   int
	inFlight   bool
	generation uint64
	now        func() time.Time
}

// NewDialog wires a dialog. history and cache are optional and receive latencies and
// first-page results.
func NewDialog(querier Querier, history *LatencyHistory, cache *Cache, log *logger.Logger) *Dialog {
	return &Dialog{
		querier: querier,
		history: history,
		cache:   cache,
		logger:  log,
		now:     time.Now,
	}
}

// Open loads the first page with the current filters.
func (d *Dialog) Open(ctx context.Context) error {
	d.mu.Lock()
	f := d.filters
	d.mu.Unlock()
	return d.SetFilters(ctx, f)
}

// SetFilters replaces the server filters, resets to page 0 and fetches it.
func (d *Dialog) SetFilters(ctx context.Context, f ServerFilters) error {
	d.mu.Lock()
	d.filters = f
	d.rows = nil
	d.total = 0
	d.nextPage = 0
	d.inFlight = false
	d.generation++
	gen := d.generation
	d.mu.Unlock()

	return d.fetch(ctx, gen)
}

// OnScroll loads the next page when the viewport is within ScrollThresholdPx of the bottom,
// more rows exist and no fetch is running. It reports whether a fetch was issued.
func (d *Dialog) OnScroll(ctx context.Context, scrollTop, viewportHeight, contentHeight float64) (bool, error) {
	if contentHeight-(scrollTop+viewportHeight) > ScrollThresholdPx {
		return false, nil
	}
	return d.LoadMore(ctx)
}

// LoadMore fetches the next page unless one is already in flight or everything is loaded.
func (d *Dialog) LoadMore(ctx context.Context) (bool, error) {
	d.mu.Lock()
	if d.inFlight || !d.hasMoreLocked() {
		d.mu.Unlock()
		return false, nil
	}
	gen := d.generation
	d.mu.Unlock()

	return true, d.fetch(ctx, gen)
}

func (d *Dialog) fetch(ctx context.Context, gen uint64) error {
	d.mu.Lock()
	if gen != d.generation || d.inFlight {
		d.mu.Unlock()
		return nil
	}
	d.inFlight = true
	q := Query{ServerFilters: d.filters, Page: d.nextPage, PageSize: PageSize}
	d.mu.Unlock()

	start := d.now()
	page, err := d.querier.Search(ctx, q)
	elapsed := d.now().Sub(start)

	if err == nil && d.history != nil {
		d.history.Record(float64(elapsed.Microseconds()) / 1000)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.generation {
		d.logger.Debug("Discarding stale search response", logger.Field("generation", gen), logger.IntField("page", q.Page))
		return nil
	}
	d.inFlight = false
	if err != nil {
		return fmt.Errorf("failed to search assets: %w", err)
	}

	d.rows = append(d.rows, page.Items...)
	d.total = page.Total
	d.nextPage++

	if q.Page == 0 && d.cache != nil && strings.TrimSpace(q.Text) != "" {
		d.cache.Update(q.Text, rowsToCached(page.Items))
	}
	return nil
}

func (d *Dialog) hasMoreLocked() bool {
	return d.nextPage == 0 || int64(len(d.rows)) < d.total
}

// HasMore reports whether the server holds rows not fetched yet.
func (d *Dialog) HasMore() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasMoreLocked()
}

func (d *Dialog) InFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight
}

func (d *Dialog) Total() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.total
}

func (d *Dialog) Filters() ServerFilters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filters
}

// Rows returns the fetched rows after client-side refinement.
func (d *Dialog) Rows(cf ClientFilters) []entity.AssetSearchRow {
	d.mu.Lock()
	rows := append([]entity.AssetSearchRow(nil), d.rows...)
	d.mu.Unlock()
	return cf.Apply(rows, d.now())
}

func rowsToCached(rows []entity.AssetSearchRow) []CachedAsset {
	out := make([]CachedAsset, 0, len(rows))
	for _, r := range rows {
		c := CachedAsset{Ticker: r.AssetCode, DisplayName: r.DisplayName, AssetType: r.AssetType}
		if r.Issuer != nil {
			c.Issuer = *r.Issuer
		}
		out = append(out, c)
	}
	return out
}
