package strategy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/brunotrento11/Teste-sub000/internal/risk/stats"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// BrapiRiskStrategy scores listed assets from their Brapi price history.
type BrapiRiskStrategy struct {
	cfg     *config.Config
	logger  *logger.Logger
	assets  repository.MarketAssetRepository
	history PriceHistory
	scorer  scoring.Scorer
}

func NewBrapiRiskStrategy(cfg *config.Config, log *logger.Logger, assets repository.MarketAssetRepository, history PriceHistory) RiskJobStrategy {
	return &BrapiRiskStrategy{
		cfg:     cfg,
		logger:  log,
		assets:  assets,
		history: history,
		scorer:  scoring.NewMarketDataScorer(),
	}
}

func (s *BrapiRiskStrategy) GetType() entity.JobType {
	return entity.JobTypeBrapiRisk
}

func (s *BrapiRiskStrategy) CountPending(ctx context.Context, sel repository.Selection) (int64, error) {
	return s.assets.CountPending(ctx, sel)
}

func (s *BrapiRiskStrategy) ListPending(ctx context.Context, sel repository.Selection, offset, limit int) ([]Asset, error) {
	rows, err := s.assets.ListPending(ctx, sel, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Asset, len(rows))
	for i, r := range rows {
		out[i] = Asset{
			ID:        r.ID,
			Code:      r.Ticker,
			AssetType: string(r.AssetType),
			Metadata:  scoring.AssetMetadata{Code: r.Ticker, AssetType: string(r.AssetType)},
		}
	}
	return out, nil
}

func (s *BrapiRiskStrategy) Process(ctx context.Context, asset Asset, now time.Time) (Outcome, error) {
	prices, err := s.history.Load(ctx, asset.Code, now)
	if err != nil {
		return Outcome{}, s.fail(ctx, asset, now, err)
	}

	var benchmark []entity.PriceObservation
	if s.cfg.RiskJobs.BenchmarkTicker != "" && s.cfg.RiskJobs.BenchmarkTicker != asset.Code {
		benchmark, err = s.history.Benchmark(ctx, s.cfg.RiskJobs.BenchmarkTicker, now)
		if err != nil {
			s.logger.WarnContext(ctx, "Benchmark unavailable, beta left unknown",
				logger.StringField("benchmark", s.cfg.RiskJobs.BenchmarkTicker), logger.ErrorField(err))
		}
	}

	ind, err := stats.Calculate(ToPricePoints(prices), ToPricePoints(benchmark), s.cfg.RiskJobs.RiskFreeRate)
	if err != nil {
		if errors.Is(err, stats.ErrInsufficientHistory) {
			err = fmt.Errorf("%w (%d observations): %w", err, ind.Observations, repository.ErrAssetUnavailable)
		}
		return Outcome{}, s.fail(ctx, asset, now, err)
	}

	result, err := s.scorer.Score(ctx, scoring.Indicators{
		Volatility:  &ind.Volatility,
		VaR95:       &ind.VaR95,
		SharpeRatio: &ind.SharpeRatio,
		MaxDrawdown: &ind.MaxDrawdown,
		Beta:        ind.Beta,
	}, asset.Metadata)
	if err != nil {
		return Outcome{}, s.fail(ctx, asset, now, err)
	}

	err = s.assets.UpdateRisk(ctx, asset.ID, repository.MarketRiskUpdate{
		Score:        result.Score,
		Category:     result.Category,
		Volatility:   ind.Volatility,
		VaR95:        ind.VaR95,
		SharpeRatio:  ind.SharpeRatio,
		MaxDrawdown:  ind.MaxDrawdown,
		Beta:         ind.Beta,
		CalculatedAt: now,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to store risk for %s: %w", asset.Code, err)
	}

	return Outcome{Score: result.Score, Category: result.Category, Method: result.Method}, nil
}

// fail records the failure on the asset. Unavailable assets get the sentinel score and a fresh
// timestamp; anything else only stores the error so the asset stays eligible.
func (s *BrapiRiskStrategy) fail(ctx context.Context, asset Asset, now time.Time, cause error) error {
	if errors.Is(cause, repository.ErrAssetUnavailable) {
		if err := s.assets.MarkUnavailable(ctx, asset.ID, cause.Error(), now); err != nil {
			s.logger.ErrorContext(ctx, "Failed to mark asset unavailable", logger.StringField("ticker", asset.Code), logger.ErrorField(err))
		}
		return cause
	}
	if err := s.assets.MarkError(ctx, asset.ID, cause.Error()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store asset error", logger.StringField("ticker", asset.Code), logger.ErrorField(err))
	}
	return cause
}
