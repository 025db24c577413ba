package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/search"
)

// AssetSearchService serves the paginated asset search view.
type AssetSearchService interface {
	Search(ctx context.Context, req dto.AssetSearchRequest) (*dto.AssetSearchResponse, error)
}

type assetSearchService struct {
	querier search.Querier
}

func NewAssetSearchService(querier search.Querier) AssetSearchService {
	return &assetSearchService{querier: querier}
}

// ParseSearchRequest validates the query string into a server query.
func ParseSearchRequest(req dto.AssetSearchRequest) (search.Query, error) {
	q := search.Query{
		ServerFilters: search.ServerFilters{Text: strings.TrimSpace(req.Text)},
		Page:          req.Page,
		PageSize:      req.PageSize,
	}
	if q.Page < 0 {
		return q, fmt.Errorf("%w: page must not be negative", ErrInvalidRequest)
	}
	if q.PageSize <= 0 || q.PageSize > search.PageSize {
		q.PageSize = search.PageSize
	}

	for _, raw := range req.Families {
		for _, f := range strings.Split(raw, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if _, ok := search.FamilyAssetTypes[f]; !ok {
				return q, fmt.Errorf("%w: unknown family %q", ErrInvalidRequest, f)
			}
			q.Families = append(q.Families, f)
		}
	}

	if req.RiskBand != "" {
		if _, _, ok := search.RiskBandRange(req.RiskBand); !ok {
			return q, fmt.Errorf("%w: unknown risk_band %q", ErrInvalidRequest, req.RiskBand)
		}
		q.RiskBand = req.RiskBand
	}

	if req.MaturityBefore != "" {
		t, err := time.Parse("2006-01-02", req.MaturityBefore)
		if err != nil {
			return q, fmt.Errorf("%w: maturity_before must be YYYY-MM-DD", ErrInvalidRequest)
		}
		q.MaturityBefore = &t
	}
	return q, nil
}

func (s *assetSearchService) Search(ctx context.Context, req dto.AssetSearchRequest) (*dto.AssetSearchResponse, error) {
	q, err := ParseSearchRequest(req)
	if err != nil {
		return nil, err
	}
	page, err := s.querier.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return &dto.AssetSearchResponse{Items: page.Items, Total: page.Total, Page: q.Page, PageSize: q.PageSize}, nil
}
