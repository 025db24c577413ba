package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFixedIncomeAsset(t *testing.T) {
	maturity := now.AddDate(2, 0, 0)
	a := FixedIncomeAsset(entity.FixedIncomeAsset{
		ID:                3,
		Code:              "PETR16",
		AssetType:         "debenture",
		Issuer:            "Petrobras",
		Indexer:           "IPCA",
		Rate:              decimal.NewNullDecimal(decimal.RequireFromString("6.25")),
		StandardDeviation: utils.ToPointer(0.4),
		MaturityDate:      &maturity,
	}, now)

	assert.Equal(t, "PETR16", a.Metadata.Code)
	assert.Equal(t, "Petrobras", a.Metadata.Issuer)
	require.NotNil(t, a.Metadata.Rate)
	assert.InDelta(t, 6.25, *a.Metadata.Rate, 1e-9)
	require.NotNil(t, a.Metadata.YearsToMaturity)
	assert.InDelta(t, 2.0, *a.Metadata.YearsToMaturity, 0.01)
	assert.Equal(t, 0.4, *a.Indicators.StandardDeviation)
	assert.Nil(t, a.Indicators.Liquidity)
}

func TestAnbimaRiskStrategy_Process(t *testing.T) {
	assets, scores, scorer := &mockFixedIncome{}, &mockScores{}, &mockScorer{}
	s := NewAnbimaRiskStrategy(logger.NewFromZap(zaptest.NewLogger(t)), assets, scores, scorer)
	asset := Asset{ID: 5, Code: "CDB123", Indicators: scoring.Indicators{StandardDeviation: utils.ToPointer(0.2)}}

	scorer.On("Score", mock.Anything, asset.Indicators, asset.Metadata).
		Return(scoring.Result{Score: 4, Category: "Conservador", Method: scoring.MethodHeuristic}, nil)
	scores.On("Upsert", mock.Anything, mock.MatchedBy(func(r *entity.RiskScore) bool {
		return r.AssetType == entity.RiskScoreAssetFixedIncome && r.AssetID == 5 &&
			r.Method == "heuristic" && r.Indicators["standard_deviation"] == 0.2 && r.CalculatedAt.Equal(now)
	})).Return(nil)
	assets.On("MarkCalculated", mock.Anything, uint(5), now).Return(nil)

	out, err := s.Process(context.Background(), asset, now)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Score: 4, Category: "Conservador", Method: scoring.MethodHeuristic}, out)
	scores.AssertExpectations(t)
	assets.AssertExpectations(t)
}

func TestAnbimaRiskStrategy_CountUsesSource(t *testing.T) {
	assets := &mockFixedIncome{}
	s := NewAnbimaRiskStrategy(logger.NewFromZap(zaptest.NewLogger(t)), assets, &mockScores{}, &mockScorer{})
	assets.On("CountPending", mock.Anything, entity.SourceANBIMA, mock.Anything).Return(int64(12), nil)

	n, err := s.CountPending(context.Background(), repository.Selection{})
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, entity.JobTypeAnbimaRisk, s.GetType())
}

func TestCVMRiskStrategy_EnrichesFromOffer(t *testing.T) {
	assets, scores, scorer, cvm := &mockFixedIncome{}, &mockScores{}, &mockScorer{}, &mockCVM{}
	s := NewCVMRiskStrategy(logger.NewFromZap(zaptest.NewLogger(t)), assets, scores, scorer, cvm)

	cvm.On("GetOffer", mock.Anything, "2024/123").Return(&dto.CVMOffer{
		Issuer:       "Companhia X",
		Indexer:      "CDI",
		Rate:         utils.ToPointer(1.5),
		SecurityType: "CRI",
		MaturityDate: now.AddDate(5, 0, 0).Format("2006-01-02"),
	}, nil)
	scorer.On("Score", mock.Anything, mock.Anything, mock.MatchedBy(func(m scoring.AssetMetadata) bool {
		return m.Issuer == "Companhia X" && m.Indexer == "CDI" && m.AssetType == "cri" &&
			m.YearsToMaturity != nil && *m.YearsToMaturity > 4.9
	})).Return(scoring.Result{Score: 12, Category: "Moderado", Method: scoring.MethodAI}, nil)
	scores.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	assets.On("MarkCalculated", mock.Anything, uint(6), now).Return(nil)

	out, err := s.Process(context.Background(), Asset{ID: 6, Code: "2024/123"}, now)
	require.NoError(t, err)
	assert.Equal(t, 12, out.Score)
	scorer.AssertExpectations(t)
}

func TestCVMRiskStrategy_MissingOfferScoresStoredMetadata(t *testing.T) {
	assets, scores, scorer, cvm := &mockFixedIncome{}, &mockScores{}, &mockScorer{}, &mockCVM{}
	s := NewCVMRiskStrategy(logger.NewFromZap(zaptest.NewLogger(t)), assets, scores, scorer, cvm)
	asset := Asset{ID: 7, Code: "2019/1", Metadata: scoring.AssetMetadata{Issuer: "Stored"}}

	cvm.On("GetOffer", mock.Anything, "2019/1").Return(nil, repository.ErrAssetUnavailable)
	scorer.On("Score", mock.Anything, asset.Indicators, asset.Metadata).
		Return(scoring.Result{Score: 9, Category: "Moderado", Method: scoring.MethodHeuristic}, nil)
	scores.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	assets.On("MarkCalculated", mock.Anything, uint(7), now).Return(nil)

	_, err := s.Process(context.Background(), asset, now)
	require.NoError(t, err)
}

func TestCVMRiskStrategy_OfferErrorIsStored(t *testing.T) {
	assets, scorer, cvm := &mockFixedIncome{}, &mockScorer{}, &mockCVM{}
	s := NewCVMRiskStrategy(logger.NewFromZap(zaptest.NewLogger(t)), assets, &mockScores{}, scorer, cvm)

	cvm.On("GetOffer", mock.Anything, "2020/9").Return(nil, errors.New("cvm: 500"))
	assets.On("MarkError", mock.Anything, uint(8), "cvm: 500").Return(nil)

	_, err := s.Process(context.Background(), Asset{ID: 8, Code: "2020/9"}, now)
	require.Error(t, err)
	scorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything, mock.Anything)
}
