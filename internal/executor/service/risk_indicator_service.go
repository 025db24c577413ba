package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/executor/strategy"
	"github.com/brunotrento11/Teste-sub000/internal/risk/stats"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// ErrInsufficientData is returned when the ticker's history cannot feed the indicators.
var ErrInsufficientData = errors.New("insufficient data for risk indicators")

// RiskIndicatorService computes indicator sets for user investments.
type RiskIndicatorService interface {
	Calculate(ctx context.Context, req dto.RiskIndicatorRequest) (*dto.RiskIndicatorResponse, error)
}

type riskIndicatorService struct {
	cfg        *config.Config
	logger     *logger.Logger
	history    strategy.PriceHistory
	indicators repository.RiskIndicatorRepository
	now        func() time.Time
}

func NewRiskIndicatorService(cfg *config.Config, log *logger.Logger, history strategy.PriceHistory, indicators repository.RiskIndicatorRepository) RiskIndicatorService {
	return &riskIndicatorService{cfg: cfg, logger: log, history: history, indicators: indicators, now: time.Now}
}

// Calculate appends a new indicator row for the investment; earlier rows are kept as history.
func (s *riskIndicatorService) Calculate(ctx context.Context, req dto.RiskIndicatorRequest) (*dto.RiskIndicatorResponse, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if req.InvestmentID == "" || ticker == "" {
		return nil, fmt.Errorf("%w: investment_id and ticker are required", ErrInvalidRequest)
	}
	now := s.now()

	prices, err := s.history.Load(ctx, ticker, now)
	if err != nil {
		if errors.Is(err, repository.ErrAssetUnavailable) {
			return nil, fmt.Errorf("%w: %w", ErrInsufficientData, err)
		}
		return nil, err
	}

	benchmarkTicker := req.Benchmark
	if benchmarkTicker == "" {
		benchmarkTicker = s.cfg.RiskJobs.BenchmarkTicker
	}
	var benchmark []entity.PriceObservation
	if benchmarkTicker != "" && benchmarkTicker != ticker {
		benchmark, err = s.history.Benchmark(ctx, benchmarkTicker, now)
		if err != nil {
			s.logger.WarnContext(ctx, "Benchmark unavailable, beta left unknown", logger.StringField("benchmark", benchmarkTicker), logger.ErrorField(err))
		}
	}

	ind, err := stats.Calculate(strategy.ToPricePoints(prices), strategy.ToPricePoints(benchmark), s.cfg.RiskJobs.RiskFreeRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientData, err)
	}

	row := &entity.RiskIndicator{
		InvestmentID:    req.InvestmentID,
		Ticker:          ticker,
		Volatility:      ind.Volatility,
		VaR95:           ind.VaR95,
		SharpeRatio:     ind.SharpeRatio,
		MaxDrawdown:     ind.MaxDrawdown,
		Beta:            ind.Beta,
		Observations:    ind.Observations,
		BenchmarkTicker: benchmarkTicker,
		CalculatedAt:    now,
	}
	if err := s.indicators.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to store risk indicators: %w", err)
	}

	return &dto.RiskIndicatorResponse{
		ID:              row.ID,
		InvestmentID:    row.InvestmentID,
		Ticker:          row.Ticker,
		Volatility:      row.Volatility,
		VaR95:           row.VaR95,
		SharpeRatio:     row.SharpeRatio,
		MaxDrawdown:     row.MaxDrawdown,
		Beta:            row.Beta,
		Observations:    row.Observations,
		BenchmarkTicker: row.BenchmarkTicker,
		CalculatedAt:    row.CalculatedAt,
	}, nil
}
