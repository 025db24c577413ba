package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/shopspring/decimal"
)

const (
	anbimaDateLayout = "2006-01-02"
	publicBondIssuer = "Tesouro Nacional"
	publicBondType   = "titulo_publico"
)

// AnbimaSyncStrategy refreshes fixed_income_assets from the ANBIMA feeds.
type AnbimaSyncStrategy struct {
	logger *logger.Logger
	anbima repository.AnbimaRepository
	assets repository.FixedIncomeRepository
}

func NewAnbimaSyncStrategy(log *logger.Logger, anbima repository.AnbimaRepository, assets repository.FixedIncomeRepository) SyncStrategy {
	return &AnbimaSyncStrategy{logger: log, anbima: anbima, assets: assets}
}

func (s *AnbimaSyncStrategy) GetType() entity.JobType {
	return entity.JobTypeAnbimaSync
}

// Sync fails as a whole only when neither feed can be read; invalid rows are counted and skipped.
func (s *AnbimaSyncStrategy) Sync(ctx context.Context) (SyncResult, error) {
	result := SyncResult{DistributionByType: map[string]int{}}
	var rows []entity.FixedIncomeAsset
	var feedErrs []error

	private, err := s.anbima.ListSecondaryMarket(ctx)
	if err != nil {
		feedErrs = append(feedErrs, err)
		result.Errors++
		result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf("secondary market feed: %v", err))
	}
	for _, item := range private {
		row, err := FromSecondaryMarket(item)
		if err != nil {
			result.Skipped++
			result.ErrorDetails = append(result.ErrorDetails, err.Error())
			continue
		}
		rows = append(rows, row)
	}

	bonds, err := s.anbima.ListPublicBonds(ctx)
	if err != nil {
		feedErrs = append(feedErrs, err)
		result.Errors++
		result.ErrorDetails = append(result.ErrorDetails, fmt.Sprintf("public bonds feed: %v", err))
	}
	for _, item := range bonds {
		row, err := FromPublicBond(item)
		if err != nil {
			result.Skipped++
			result.ErrorDetails = append(result.ErrorDetails, err.Error())
			continue
		}
		rows = append(rows, row)
	}

	if len(feedErrs) == 2 {
		return result, fmt.Errorf("failed to read anbima feeds: %w", feedErrs[0])
	}

	if _, err := s.assets.Upsert(ctx, rows); err != nil {
		return result, fmt.Errorf("failed to upsert anbima assets: %w", err)
	}

	for _, r := range rows {
		result.DistributionByType[r.AssetType]++
	}
	result.Processed = len(rows)

	s.logger.InfoContext(ctx, "ANBIMA sync finished",
		logger.IntField("processed", result.Processed),
		logger.IntField("skipped", result.Skipped),
		logger.IntField("errors", result.Errors))
	return result, nil
}

// FromSecondaryMarket maps one private-credit row. Rows without a code or a parseable maturity are rejected.
func FromSecondaryMarket(item dto.AnbimaSecondaryMarketItem) (entity.FixedIncomeAsset, error) {
	code := strings.TrimSpace(item.Code)
	if code == "" {
		return entity.FixedIncomeAsset{}, fmt.Errorf("secondary market row without code")
	}
	maturity, err := parseAnbimaDate(item.MaturityDate)
	if err != nil {
		return entity.FixedIncomeAsset{}, fmt.Errorf("%s: invalid maturity %q", code, item.MaturityDate)
	}
	return entity.FixedIncomeAsset{
		Source:            entity.SourceANBIMA,
		Code:              code,
		AssetType:         normalizeAssetType(item.AssetType, "debenture"),
		Issuer:            strings.TrimSpace(item.Issuer),
		Indexer:           strings.TrimSpace(item.Indexer),
		Rate:              nullDecimal(item.IndicativeRate),
		UnitPrice:         nullDecimal(item.UnitPrice),
		StandardDeviation: item.StandardDeviation,
		Duration:          item.Duration,
		MaturityDate:      maturity,
	}, nil
}

// FromPublicBond maps one federal bond row; its code is the bond type plus the maturity date.
func FromPublicBond(item dto.AnbimaPublicBondItem) (entity.FixedIncomeAsset, error) {
	maturity, err := parseAnbimaDate(item.MaturityDate)
	if err != nil || maturity == nil {
		return entity.FixedIncomeAsset{}, fmt.Errorf("%s: invalid maturity %q", item.BondType, item.MaturityDate)
	}
	bondType := strings.ToUpper(strings.TrimSpace(item.BondType))
	if bondType == "" {
		return entity.FixedIncomeAsset{}, fmt.Errorf("public bond row without type")
	}
	return entity.FixedIncomeAsset{
		Source:            entity.SourceANBIMA,
		Code:              fmt.Sprintf("%s-%s", bondType, maturity.Format(anbimaDateLayout)),
		AssetType:         publicBondType,
		Issuer:            publicBondIssuer,
		Indexer:           publicBondIndexer(bondType),
		Rate:              nullDecimal(item.IndicativeRate),
		UnitPrice:         nullDecimal(item.UnitPrice),
		StandardDeviation: item.StandardDev,
		MaturityDate:      maturity,
	}, nil
}

func publicBondIndexer(bondType string) string {
	switch bondType {
	case "LFT":
		return "SELIC"
	case "NTN-B", "NTN-B PRINCIPAL":
		return "IPCA"
	default:
		return "PRE"
	}
}

func parseAnbimaDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(anbimaDateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func normalizeAssetType(t, fallback string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return fallback
	}
	return t
}

func nullDecimal(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v))
}
