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

// CVMRepository reads public offering details from the CVM API.
type CVMRepository interface {
	GetOffer(ctx context.Context, offerNumber string) (*dto.CVMOffer, error)
}

type cvmRepository struct {
	log    *logger.Logger
	client *resty.Client
}

func NewCVMRepository(cfg *config.Config, log *logger.Logger) CVMRepository {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.CVM.BaseURL, "/")).
		SetTimeout(cfg.CVM.Timeout)
	return &cvmRepository{log: log, client: client}
}

// GetOffer returns ErrAssetUnavailable when CVM does not know the offer.
func (r *cvmRepository) GetOffer(ctx context.Context, offerNumber string) (*dto.CVMOffer, error) {
	var out dto.CVMOffer
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("number", offerNumber).
		SetResult(&out).
		Get("/api/ofertas/{number}")
	if err != nil {
		return nil, fmt.Errorf("failed to request cvm offer %s: %w", offerNumber, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("cvm offer %s: %w", offerNumber, ErrAssetUnavailable)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("received non-OK response from cvm: %d - %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}
