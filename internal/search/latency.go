// Package search holds the client side of asset search: adaptive debounce, the local
// suggestion cache, persisted client state and the paginated search dialog.
package search

import (
	"math"
	"sync"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/risk/stats"
)

const (
	LatencyCapacity = 20
	MaxLatencyMs    = 30000

	minAdaptiveSamples = 5
	delayHeadroomMs    = 50
	absoluteMaxDelayMs = 300
)

// DelayConfig tunes the adaptive debounce.
type DelayConfig struct {
	MinDelay     time.Duration `mapstructure:"min_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
}

// DefaultDelayConfig is used when the CLI has no debounce section.
var DefaultDelayConfig = DelayConfig{
	MinDelay:     150 * time.Millisecond,
	MaxDelay:     500 * time.Millisecond,
	InitialDelay: 300 * time.Millisecond,
}

// LatencyHistory keeps the most recent request latencies in whole milliseconds.
type LatencyHistory struct {
	mu      sync.Mutex
	samples []int
}

func NewLatencyHistory(samples []int) *LatencyHistory {
	h := &LatencyHistory{}
	for _, s := range samples {
		h.Record(float64(s))
	}
	return h
}

// Record stores ms rounded to an integer. Values outside [0, MaxLatencyMs] are ignored.
func (h *LatencyHistory) Record(ms float64) bool {
	if math.IsNaN(ms) || ms < 0 || ms > MaxLatencyMs {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = append(h.samples, int(math.Round(ms)))
	if len(h.samples) > LatencyCapacity {
		h.samples = append([]int(nil), h.samples[len(h.samples)-LatencyCapacity:]...)
	}
	return true
}

// Samples returns a copy of the stored history, oldest first.
func (h *LatencyHistory) Samples() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int{}, h.samples...)
}

func (h *LatencyHistory) percentile(p float64) (int, bool) {
	samples := h.Samples()
	if len(samples) == 0 {
		return 0, false
	}
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s)
	}
	return int(stats.Percentile(values, p)), true
}

// P75 of the history; ok is false when empty.
func (h *LatencyHistory) P75() (int, bool) {
	return h.percentile(0.75)
}

// P90 is exposed for observability only.
func (h *LatencyHistory) P90() (int, bool) {
	return h.percentile(0.90)
}

// Delay computes the debounce delay for the current history.
func (h *LatencyHistory) Delay(cfg DelayConfig) time.Duration {
	if len(h.Samples()) < minAdaptiveSamples {
		return cfg.InitialDelay
	}
	p75, _ := h.P75()
	p75d := time.Duration(p75) * time.Millisecond
	if p75d < cfg.MinDelay {
		return cfg.MinDelay
	}

	ceiling := absoluteMaxDelayMs * time.Millisecond
	if cfg.MaxDelay < ceiling {
		ceiling = cfg.MaxDelay
	}
	delay := p75d + delayHeadroomMs*time.Millisecond
	if delay > ceiling {
		return ceiling
	}
	return delay
}
