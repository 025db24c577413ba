package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const (
	anbimaPrivateCreditPath = "/feed/precos-indices/v1/debentures/mercado-secundario"
	anbimaPublicBondsPath   = "/feed/precos-indices/v1/titulos-publicos/mercado-secundario-TPF"
)

// AnbimaRepository reads the ANBIMA secondary-market price feeds.
type AnbimaRepository interface {
	ListSecondaryMarket(ctx context.Context) ([]dto.AnbimaSecondaryMarketItem, error)
	ListPublicBonds(ctx context.Context) ([]dto.AnbimaPublicBondItem, error)
}

type anbimaRepository struct {
	log    *logger.Logger
	client *resty.Client
}

// NewAnbimaRepository creates an ANBIMA feed client authenticated with client_id/access_token headers.
func NewAnbimaRepository(cfg *config.Config, log *logger.Logger) AnbimaRepository {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.Anbima.BaseURL, "/")).
		SetTimeout(cfg.Anbima.Timeout).
		SetHeader("client_id", cfg.Anbima.ClientID).
		SetHeader("access_token", cfg.Anbima.AccessToken)
	return &anbimaRepository{log: log, client: client}
}

func (r *anbimaRepository) ListSecondaryMarket(ctx context.Context) ([]dto.AnbimaSecondaryMarketItem, error) {
	var out []dto.AnbimaSecondaryMarketItem
	if err := r.get(ctx, anbimaPrivateCreditPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *anbimaRepository) ListPublicBonds(ctx context.Context) ([]dto.AnbimaPublicBondItem, error) {
	var out []dto.AnbimaPublicBondItem
	if err := r.get(ctx, anbimaPublicBondsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *anbimaRepository) get(ctx context.Context, path string, out interface{}) error {
	resp, err := r.client.R().SetContext(ctx).SetResult(out).Get(path)
	if err != nil {
		return fmt.Errorf("failed to request anbima feed %s: %w", path, err)
	}
	if resp.IsError() {
		r.log.Error("Received non-OK response from anbima",
			logger.StringField("path", path),
			logger.IntField("status_code", resp.StatusCode()))
		return fmt.Errorf("received non-OK response from anbima: %d - %s", resp.StatusCode(), resp.String())
	}
	return nil
}
