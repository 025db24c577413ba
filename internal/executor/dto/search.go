package dto

import "github.com/brunotrento11/Teste-sub000/internal/entity"

// AssetSearchRequest binds the query string of GET /api/v1/assets/search.
type AssetSearchRequest struct {
	Text           string   `query:"q"`
	Families       []string `query:"family"`
	RiskBand       string   `query:"risk_band"`
	MaturityBefore string   `query:"maturity_before"`
	Page           int      `query:"page"`
	PageSize       int      `query:"page_size"`
}

// AssetSearchResponse is one page of the asset search view.
type AssetSearchResponse struct {
	Items    []entity.AssetSearchRow `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}
