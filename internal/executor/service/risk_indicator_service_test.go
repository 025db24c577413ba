package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func observations(ticker string, n int) []entity.PriceObservation {
	out := make([]entity.PriceObservation, n)
	price := 20.0
	for i := range out {
		if i%3 == 0 {
			price *= 0.98
		} else {
			price *= 1.015
		}
		out[i] = entity.PriceObservation{
			Ticker: ticker,
			Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close:  price,
		}
	}
	return out
}

func newIndicatorService(t *testing.T) (*riskIndicatorService, *mockHistory, *mockIndicators) {
	history := &mockHistory{}
	indicators := &mockIndicators{}
	svc := &riskIndicatorService{
		cfg:        &config.Config{RiskJobs: config.RiskJobs{RiskFreeRate: 0.105, BenchmarkTicker: "BOVA11"}},
		logger:     logger.NewFromZap(zaptest.NewLogger(t)),
		history:    history,
		indicators: indicators,
		now:        func() time.Time { return fixedNow },
	}
	return svc, history, indicators
}

func TestRiskIndicatorService_Calculate(t *testing.T) {
	svc, history, indicators := newIndicatorService(t)
	history.On("Load", mock.Anything, "PETR4", fixedNow).Return(observations("PETR4", 60), nil)
	history.On("Benchmark", mock.Anything, "BOVA11", fixedNow).Return(observations("BOVA11", 60), nil)
	indicators.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.RiskIndicator).ID = 9
	}).Return(nil)

	resp, err := svc.Calculate(context.Background(), dto.RiskIndicatorRequest{InvestmentID: "inv-1", Ticker: " petr4 "})
	require.NoError(t, err)

	assert.Equal(t, uint(9), resp.ID)
	assert.Equal(t, "PETR4", resp.Ticker)
	assert.Equal(t, "BOVA11", resp.BenchmarkTicker)
	assert.Equal(t, 59, resp.Observations)
	assert.Greater(t, resp.Volatility, 0.0)
	require.NotNil(t, resp.Beta)
	assert.InDelta(t, 1.0, *resp.Beta, 1e-9)
	assert.Equal(t, fixedNow, resp.CalculatedAt)
}

func TestRiskIndicatorService_BenchmarkFailureLeavesBetaUnknown(t *testing.T) {
	svc, history, indicators := newIndicatorService(t)
	history.On("Load", mock.Anything, "VALE3", fixedNow).Return(observations("VALE3", 45), nil)
	history.On("Benchmark", mock.Anything, "BOVA11", fixedNow).Return(nil, errors.New("brapi down"))
	indicators.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Calculate(context.Background(), dto.RiskIndicatorRequest{InvestmentID: "inv-2", Ticker: "VALE3"})
	require.NoError(t, err)
	assert.Nil(t, resp.Beta)
}

func TestRiskIndicatorService_InsufficientData(t *testing.T) {
	t.Run("short history", func(t *testing.T) {
		svc, history, indicators := newIndicatorService(t)
		history.On("Load", mock.Anything, "NEWS3", fixedNow).Return(observations("NEWS3", 10), nil)
		history.On("Benchmark", mock.Anything, "BOVA11", fixedNow).Return(observations("BOVA11", 60), nil)

		_, err := svc.Calculate(context.Background(), dto.RiskIndicatorRequest{InvestmentID: "inv-3", Ticker: "NEWS3"})
		assert.ErrorIs(t, err, ErrInsufficientData)
		indicators.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown ticker", func(t *testing.T) {
		svc, history, _ := newIndicatorService(t)
		history.On("Load", mock.Anything, "XXXX3", fixedNow).
			Return(nil, fmt.Errorf("brapi 404: %w", repository.ErrAssetUnavailable))

		_, err := svc.Calculate(context.Background(), dto.RiskIndicatorRequest{InvestmentID: "inv-4", Ticker: "XXXX3"})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}

func TestRiskIndicatorService_InvalidRequest(t *testing.T) {
	svc, _, _ := newIndicatorService(t)
	_, err := svc.Calculate(context.Background(), dto.RiskIndicatorRequest{Ticker: "PETR4"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
