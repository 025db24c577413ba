package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// enricher refreshes an asset's metadata from an upstream source before scoring.
type enricher func(ctx context.Context, asset *Asset, now time.Time) error

// fixedIncomeStrategy scores one fixed-income source with the AI-assisted scorer and its
// heuristic fallback, storing the result in risk_scores.
type fixedIncomeStrategy struct {
	jobType entity.JobType
	source  entity.AssetSource
	logger  *logger.Logger
	assets  repository.FixedIncomeRepository
	scores  repository.RiskScoreRepository
	scorer  scoring.Scorer
	enrich  enricher
}

// NewAnbimaRiskStrategy scores the ANBIMA secondary-market working set.
func NewAnbimaRiskStrategy(log *logger.Logger, assets repository.FixedIncomeRepository, scores repository.RiskScoreRepository, scorer scoring.Scorer) RiskJobStrategy {
	return &fixedIncomeStrategy{
		jobType: entity.JobTypeAnbimaRisk,
		source:  entity.SourceANBIMA,
		logger:  log,
		assets:  assets,
		scores:  scores,
		scorer:  scorer,
	}
}

func (s *fixedIncomeStrategy) GetType() entity.JobType {
	return s.jobType
}

func (s *fixedIncomeStrategy) CountPending(ctx context.Context, sel repository.Selection) (int64, error) {
	return s.assets.CountPending(ctx, s.source, sel)
}

func (s *fixedIncomeStrategy) ListPending(ctx context.Context, sel repository.Selection, offset, limit int) ([]Asset, error) {
	rows, err := s.assets.ListPending(ctx, s.source, sel, offset, limit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]Asset, len(rows))
	for i, r := range rows {
		out[i] = FixedIncomeAsset(r, now)
	}
	return out, nil
}

func (s *fixedIncomeStrategy) Process(ctx context.Context, asset Asset, now time.Time) (Outcome, error) {
	if s.enrich != nil {
		if err := s.enrich(ctx, &asset, now); err != nil {
			if markErr := s.assets.MarkError(ctx, asset.ID, err.Error()); markErr != nil {
				s.logger.ErrorContext(ctx, "Failed to store asset error", logger.StringField("code", asset.Code), logger.ErrorField(markErr))
			}
			return Outcome{}, err
		}
	}

	result, err := s.scorer.Score(ctx, asset.Indicators, asset.Metadata)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to score %s: %w", asset.Code, err)
	}

	err = s.scores.Upsert(ctx, &entity.RiskScore{
		AssetType:    entity.RiskScoreAssetFixedIncome,
		AssetID:      asset.ID,
		Score:        result.Score,
		Category:     result.Category,
		Method:       string(result.Method),
		Indicators:   indicatorsJSON(asset.Indicators),
		CalculatedAt: now,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to store risk score for %s: %w", asset.Code, err)
	}
	if err := s.assets.MarkCalculated(ctx, asset.ID, now); err != nil {
		return Outcome{}, fmt.Errorf("failed to mark %s calculated: %w", asset.Code, err)
	}

	return Outcome{Score: result.Score, Category: result.Category, Method: result.Method}, nil
}

// FixedIncomeAsset builds the scoring input of a stored fixed-income row.
func FixedIncomeAsset(r entity.FixedIncomeAsset, now time.Time) Asset {
	return Asset{
		ID:        r.ID,
		Code:      r.Code,
		AssetType: r.AssetType,
		Metadata: scoring.AssetMetadata{
			Code:            r.Code,
			AssetType:       r.AssetType,
			Issuer:          r.Issuer,
			Indexer:         r.Indexer,
			YearsToMaturity: r.YearsToMaturity(now),
			Rate:            decimalPtr(r.Rate),
		},
		Indicators: scoring.Indicators{
			StandardDeviation: r.StandardDeviation,
			Liquidity:         r.Liquidity,
		},
	}
}

func decimalPtr(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f, _ := d.Decimal.Float64()
	return &f
}

func indicatorsJSON(ind scoring.Indicators) datatypes.JSONMap {
	m := datatypes.JSONMap{}
	put := func(k string, v *float64) {
		if v != nil {
			m[k] = *v
		}
	}
	put("volatility", ind.Volatility)
	put("var_95", ind.VaR95)
	put("sharpe_ratio", ind.SharpeRatio)
	put("max_drawdown", ind.MaxDrawdown)
	put("beta", ind.Beta)
	put("standard_deviation", ind.StandardDeviation)
	put("liquidity", ind.Liquidity)
	return m
}
