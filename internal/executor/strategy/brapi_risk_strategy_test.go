package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func series(n int) []entity.PriceObservation {
	out := make([]entity.PriceObservation, n)
	price := 30.0
	for i := range out {
		if i%2 == 0 {
			price *= 1.02
		} else {
			price *= 0.985
		}
		out[i] = entity.PriceObservation{Date: now.AddDate(0, 0, i-n), Close: price}
	}
	return out
}

func newBrapiStrategy(t *testing.T) (RiskJobStrategy, *mockMarketAssets, *mockHistory) {
	assets, history := &mockMarketAssets{}, &mockHistory{}
	cfg := &config.Config{RiskJobs: config.RiskJobs{BenchmarkTicker: "BOVA11", RiskFreeRate: 0.105}}
	return NewBrapiRiskStrategy(cfg, logger.NewFromZap(zaptest.NewLogger(t)), assets, history), assets, history
}

func TestBrapiRiskStrategy_ListPending(t *testing.T) {
	s, assets, _ := newBrapiStrategy(t)
	sel := repository.Selection{AsOf: now, StaleBefore: now}
	assets.On("ListPending", mock.Anything, sel, 0, 2).Return([]entity.MarketAsset{
		{ID: 1, Ticker: "PETR4", AssetType: entity.MarketAssetStock},
		{ID: 2, Ticker: "HGLG11", AssetType: entity.MarketAssetFII},
	}, nil)

	out, err := s.ListPending(context.Background(), sel, 0, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "HGLG11", out[1].Code)
	assert.Equal(t, "fii", out[1].Metadata.AssetType)
}

func TestBrapiRiskStrategy_Process(t *testing.T) {
	s, assets, history := newBrapiStrategy(t)
	asset := Asset{ID: 7, Code: "PETR4", AssetType: "stock", Metadata: scoring.AssetMetadata{Code: "PETR4", AssetType: "stock"}}

	history.On("Load", mock.Anything, "PETR4", now).Return(series(90), nil)
	history.On("Benchmark", mock.Anything, "BOVA11", now).Return(series(90), nil)
	var stored repository.MarketRiskUpdate
	assets.On("UpdateRisk", mock.Anything, uint(7), mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(2).(repository.MarketRiskUpdate)
	}).Return(nil)

	out, err := s.Process(context.Background(), asset, now)
	require.NoError(t, err)

	assert.Equal(t, scoring.MethodMarket, out.Method)
	assert.GreaterOrEqual(t, out.Score, scoring.MinScore)
	assert.LessOrEqual(t, out.Score, scoring.MaxScore)
	assert.Equal(t, out.Score, stored.Score)
	assert.Equal(t, out.Category, stored.Category)
	assert.Equal(t, now, stored.CalculatedAt)
	require.NotNil(t, stored.Beta)
	assert.InDelta(t, 1.0, *stored.Beta, 1e-9)
}

func TestBrapiRiskStrategy_ShortHistoryMarksUnavailable(t *testing.T) {
	s, assets, history := newBrapiStrategy(t)
	asset := Asset{ID: 8, Code: "NEWS3"}

	history.On("Load", mock.Anything, "NEWS3", now).Return(series(12), nil)
	history.On("Benchmark", mock.Anything, "BOVA11", now).Return(series(90), nil)
	assets.On("MarkUnavailable", mock.Anything, uint(8), mock.MatchedBy(func(reason string) bool {
		return strings.Contains(reason, "11 observations")
	}), now).Return(nil)

	_, err := s.Process(context.Background(), asset, now)
	assert.ErrorIs(t, err, repository.ErrAssetUnavailable)
	assets.AssertExpectations(t)
	assets.AssertNotCalled(t, "UpdateRisk", mock.Anything, mock.Anything, mock.Anything)
}

func TestBrapiRiskStrategy_UnknownTickerMarksUnavailable(t *testing.T) {
	s, assets, history := newBrapiStrategy(t)
	history.On("Load", mock.Anything, "GONE3", now).Return(nil, fmt.Errorf("brapi: %w", repository.ErrAssetUnavailable))
	assets.On("MarkUnavailable", mock.Anything, uint(9), mock.Anything, now).Return(nil)

	_, err := s.Process(context.Background(), Asset{ID: 9, Code: "GONE3"}, now)
	assert.ErrorIs(t, err, repository.ErrAssetUnavailable)
}

func TestBrapiRiskStrategy_TransientErrorKeepsAssetEligible(t *testing.T) {
	s, assets, history := newBrapiStrategy(t)
	history.On("Load", mock.Anything, "ITUB4", now).Return(nil, errors.New("brapi: 503"))
	assets.On("MarkError", mock.Anything, uint(10), "brapi: 503").Return(nil)

	_, err := s.Process(context.Background(), Asset{ID: 10, Code: "ITUB4"}, now)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrAssetUnavailable)
	assets.AssertNotCalled(t, "MarkUnavailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBrapiRiskStrategy_BenchmarkItselfSkipsBeta(t *testing.T) {
	s, assets, history := newBrapiStrategy(t)
	history.On("Load", mock.Anything, "BOVA11", now).Return(series(60), nil)
	assets.On("UpdateRisk", mock.Anything, uint(11), mock.MatchedBy(func(u repository.MarketRiskUpdate) bool {
		return u.Beta == nil
	})).Return(nil)

	_, err := s.Process(context.Background(), Asset{ID: 11, Code: "BOVA11", AssetType: "etf"}, now)
	require.NoError(t, err)
	history.AssertNotCalled(t, "Benchmark", mock.Anything, mock.Anything, mock.Anything)
}
