package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/risk/stats"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

// historyLookback bounds the stored observations fed into the indicators (one year of bars plus slack).
const historyLookback = 400 * 24 * time.Hour

// PriceHistory loads daily observations, reusing stored rows while they are fresh.
type PriceHistory interface {
	Load(ctx context.Context, ticker string, now time.Time) ([]entity.PriceObservation, error)
	// Benchmark is Load memoized in process for the cache TTL; every asset of a chunk shares it.
	Benchmark(ctx context.Context, ticker string, now time.Time) ([]entity.PriceObservation, error)
}

type priceHistory struct {
	brapi    repository.BrapiRepository
	prices   repository.PriceObservationRepository
	cacheTTL time.Duration
	memo     *gocache.Cache
	logger   *logger.Logger
}

func NewPriceHistory(brapi repository.BrapiRepository, prices repository.PriceObservationRepository, cacheTTL time.Duration, log *logger.Logger) PriceHistory {
	return &priceHistory{
		brapi:    brapi,
		prices:   prices,
		cacheTTL: cacheTTL,
		memo:     gocache.New(cacheTTL, 2*cacheTTL),
		logger:   log,
	}
}

func (p *priceHistory) Load(ctx context.Context, ticker string, now time.Time) ([]entity.PriceObservation, error) {
	last, err := p.prices.LastUpdated(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to read price freshness for %s: %w", ticker, err)
	}

	if last == nil || now.Sub(*last) >= p.cacheTTL {
		quote, err := p.brapi.GetHistory(ctx, ticker)
		if err != nil {
			return nil, err
		}
		if err := p.prices.Upsert(ctx, ToObservations(ticker, quote.HistoricalDataPrice)); err != nil {
			return nil, fmt.Errorf("failed to store prices for %s: %w", ticker, err)
		}
		p.logger.Debug("Refreshed price history", logger.StringField("ticker", ticker), logger.IntField("bars", len(quote.HistoricalDataPrice)))
	}

	return p.prices.FindSince(ctx, ticker, now.Add(-historyLookback))
}

func (p *priceHistory) Benchmark(ctx context.Context, ticker string, now time.Time) ([]entity.PriceObservation, error) {
	if cached, ok := p.memo.Get(ticker); ok {
		return cached.([]entity.PriceObservation), nil
	}
	obs, err := p.Load(ctx, ticker, now)
	if err != nil {
		return nil, err
	}
	p.memo.SetDefault(ticker, obs)
	return obs, nil
}

// ToObservations converts Brapi bars into rows, dropping bars without a close.
func ToObservations(ticker string, bars []dto.BrapiHistoricalBar) []entity.PriceObservation {
	out := make([]entity.PriceObservation, 0, len(bars))
	for _, b := range bars {
		if b.Close == nil {
			continue
		}
		day := time.Unix(b.Date, 0).UTC().Truncate(24 * time.Hour)
		obs := entity.PriceObservation{
			Ticker:        ticker,
			Date:          day,
			Close:         *b.Close,
			AdjustedClose: b.AdjustedClose,
		}
		if b.Open != nil {
			obs.Open = *b.Open
		}
		if b.High != nil {
			obs.High = *b.High
		}
		if b.Low != nil {
			obs.Low = *b.Low
		}
		if b.Volume != nil {
			obs.Volume = *b.Volume
		}
		out = append(out, obs)
	}
	return out
}

// ToPricePoints adapts stored observations to the statistics engine.
func ToPricePoints(obs []entity.PriceObservation) []stats.PricePoint {
	out := make([]stats.PricePoint, len(obs))
	for i, o := range obs {
		out[i] = stats.PricePoint{Close: o.Close, AdjustedClose: o.AdjustedClose}
	}
	return out
}
