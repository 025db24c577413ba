package strategy

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
)

// Asset is one unit of work of a batch risk job together with what the scorer needs to know about it.
type Asset struct {
	ID         uint
	Code       string
	AssetType  string
	Metadata   scoring.AssetMetadata
	Indicators scoring.Indicators
}

// Outcome is the score written for one asset.
type Outcome struct {
	Score    int
	Category string
	Method   scoring.Method
}

// RiskJobStrategy is a chunked batch risk job. Process returns an error wrapping
// repository.ErrAssetUnavailable when the asset was marked permanently unavailable.
type RiskJobStrategy interface {
	GetType() entity.JobType
	CountPending(ctx context.Context, sel repository.Selection) (int64, error)
	ListPending(ctx context.Context, sel repository.Selection, offset, limit int) ([]Asset, error)
	Process(ctx context.Context, asset Asset, now time.Time) (Outcome, error)
}

// SyncResult summarizes one reference-data sync pass.
type SyncResult struct {
	Processed          int
	Skipped            int
	Errors             int
	ErrorDetails       []string
	DistributionByType map[string]int
}

// SyncStrategy refreshes reference data in a single pass instead of chunks.
type SyncStrategy interface {
	GetType() entity.JobType
	Sync(ctx context.Context) (SyncResult, error)
}
