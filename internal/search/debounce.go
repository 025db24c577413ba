package search

import (
	"sync"
	"time"
)

// Debouncer emits the last value set once no new value arrived for the current delay.
// Every Set cancels the pending timer.
type Debouncer[T any] struct {
	mu      sync.Mutex
	timer   *time.Timer
	history *LatencyHistory
	cfg     DelayConfig
	emit    func(T)
}

// NewDebouncer builds an adaptive trailing-edge debouncer. emit runs on the timer goroutine.
func NewDebouncer[T any](history *LatencyHistory, cfg DelayConfig, emit func(T)) *Debouncer[T] {
	if history == nil {
		history = NewLatencyHistory(nil)
	}
	return &Debouncer[T]{history: history, cfg: cfg, emit: emit}
}

// Set schedules value for emission after the current delay.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.CurrentDelay(), func() {
		d.emit(value)
	})
}

// Stop cancels any pending emission.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// RecordLatency feeds an observed request latency into the delay computation.
func (d *Debouncer[T]) RecordLatency(ms float64) {
	d.history.Record(ms)
}

func (d *Debouncer[T]) CurrentDelay() time.Duration {
	return d.history.Delay(d.cfg)
}

func (d *Debouncer[T]) History() *LatencyHistory {
	return d.history
}
