package strategy

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// NewCVMRiskStrategy scores CVM public offerings. Each asset is enriched from the CVM offer API
// first; offers CVM no longer knows are scored from the stored metadata.
func NewCVMRiskStrategy(log *logger.Logger, assets repository.FixedIncomeRepository, scores repository.RiskScoreRepository,
	scorer scoring.Scorer, cvm repository.CVMRepository) RiskJobStrategy {
	s := &fixedIncomeStrategy{
		jobType: entity.JobTypeCVMRisk,
		source:  entity.SourceCVM,
		logger:  log,
		assets:  assets,
		scores:  scores,
		scorer:  scorer,
	}
	s.enrich = func(ctx context.Context, asset *Asset, now time.Time) error {
		offer, err := cvm.GetOffer(ctx, asset.Code)
		if errors.Is(err, repository.ErrAssetUnavailable) {
			log.DebugContext(ctx, "CVM offer not found, scoring stored metadata", logger.StringField("code", asset.Code))
			return nil
		}
		if err != nil {
			return err
		}

		if offer.Issuer != "" {
			asset.Metadata.Issuer = offer.Issuer
		}
		if offer.Indexer != "" {
			asset.Metadata.Indexer = offer.Indexer
		}
		if offer.Rate != nil {
			asset.Metadata.Rate = offer.Rate
		}
		if t := strings.ToLower(offer.SecurityType); t != "" && asset.Metadata.AssetType == "" {
			asset.Metadata.AssetType = t
		}
		if m, err := time.Parse("2006-01-02", offer.MaturityDate); err == nil {
			years := m.Sub(now).Hours() / 24 / 365.25
			asset.Metadata.YearsToMaturity = &years
		}
		return nil
	}
	return s
}
