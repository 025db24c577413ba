package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/go-resty/resty/v2"
)

// BrapiRepository fetches quotes and daily history for listed tickers.
type BrapiRepository interface {
	GetHistory(ctx context.Context, ticker string) (*dto.BrapiQuoteResult, error)
}

type brapiRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	client *resty.Client
}

// NewBrapiRepository creates a Brapi client from configuration.
func NewBrapiRepository(cfg *config.Config, log *logger.Logger) BrapiRepository {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.Brapi.BaseURL, "/")).
		SetTimeout(cfg.Brapi.Timeout)
	if cfg.Brapi.Token != "" {
		client.SetAuthToken(cfg.Brapi.Token)
	}
	return &brapiRepository{cfg: cfg, log: log, client: client}
}

// GetHistory returns the quote with its historical bars. Unknown tickers and empty histories
// return ErrAssetUnavailable; everything else is treated as transient.
func (r *brapiRepository) GetHistory(ctx context.Context, ticker string) (*dto.BrapiQuoteResult, error) {
	var out dto.BrapiQuoteResponse
	var apiErr dto.BrapiErrorResponse

	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"range":    r.cfg.Brapi.Range,
			"interval": r.cfg.Brapi.Interval,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Get("/api/quote/{ticker}")
	if err != nil {
		return nil, fmt.Errorf("failed to request brapi quote for %s: %w", ticker, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %s: %w", ticker, apiErr.Message, ErrAssetUnavailable)
	case resp.IsError():
		r.log.Warn("Received non-OK response from brapi",
			logger.StringField("ticker", ticker),
			logger.IntField("status_code", resp.StatusCode()))
		return nil, fmt.Errorf("received non-OK response from brapi for %s: %d - %s", ticker, resp.StatusCode(), apiErr.Message)
	}

	if len(out.Results) == 0 || len(out.Results[0].HistoricalDataPrice) == 0 {
		return nil, fmt.Errorf("%s: no historical data: %w", ticker, ErrAssetUnavailable)
	}
	return &out.Results[0], nil
}
