package search

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
)

// PageSize is the fixed server page size.
const PageSize = 100

// Asset-type families offered by the dialog's type filter.
const (
	FamilyTesouro    = "tesouro"
	FamilyBankCredit = "credito_bancario"
	FamilyCorporate  = "credito_privado"
	FamilyTaxExempt  = "isentos"
	FamilyStocks     = "acoes"
	FamilyRealEstate = "fiis"
	FamilyETFs       = "etfs"
	FamilyBDRs       = "bdrs"
)

// FamilyAssetTypes expands a family into asset_type values. FamilyTaxExempt additionally
// matches incentivized debentures by name; see the server query.
var FamilyAssetTypes = map[string][]string{
	FamilyTesouro:    {"titulo_publico", "tesouro"},
	FamilyBankCredit: {"cdb", "lc", "lf"},
	FamilyCorporate:  {"debenture", "cri", "cra", "fidc"},
	FamilyTaxExempt:  {"lci", "lca"},
	FamilyStocks:     {"stock"},
	FamilyRealEstate: {"fii"},
	FamilyETFs:       {"etf"},
	FamilyBDRs:       {"bdr"},
}

// Risk score bands of the server filter.
const (
	RiskBandLow      = "baixo"
	RiskBandModerate = "moderado"
	RiskBandHigh     = "alto"
)

// RiskBandRange returns the inclusive score range of a band.
func RiskBandRange(band string) (lo, hi int, ok bool) {
	switch band {
	case RiskBandLow:
		return 1, 6, true
	case RiskBandModerate:
		return 7, 13, true
	case RiskBandHigh:
		return 14, 20, true
	default:
		return 0, 0, false
	}
}

// ServerFilters are the filters applied by the server query. Changing any of them restarts
// pagination.
type ServerFilters struct {
	Text           string     `json:"q,omitempty"`
	Families       []string   `json:"families,omitempty"`
	RiskBand       string     `json:"risk_band,omitempty"`
	MaturityBefore *time.Time `json:"maturity_before,omitempty"`
}

// Query is one server page request.
type Query struct {
	ServerFilters
	Page     int
	PageSize int
}

// Page is one server page plus the total match count.
type Page struct {
	Items []entity.AssetSearchRow `json:"items"`
	Total int64                   `json:"total"`
}

// Querier runs server queries against the asset search view.
type Querier interface {
	Search(ctx context.Context, q Query) (Page, error)
}
