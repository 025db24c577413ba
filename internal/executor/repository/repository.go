package repository

import (
	"errors"
	"time"
)

// ErrAssetUnavailable marks a permanent per-asset failure: the upstream has no data for the asset
// or too little of it. Callers persist the unavailable sentinel instead of retrying.
var ErrAssetUnavailable = errors.New("asset data unavailable")

// Selection describes the working set of a batch risk job invocation.
type Selection struct {
	// AsOf is the cycle start. Assets calculated at or after it stay in the set so chunk
	// offsets remain stable while earlier chunks advance their timestamps.
	AsOf time.Time
	// StaleBefore is AsOf minus the job's recalculation window.
	StaleBefore time.Time
	// Ticker restricts the set to one asset code and disables the pending criterion.
	Ticker           string
	PrioritizeLiquid bool
}

// IsSingle reports whether the selection targets one explicit asset.
func (s Selection) IsSingle() bool {
	return s.Ticker != ""
}
