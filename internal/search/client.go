package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPQuerier queries the execution service's asset search endpoint.
type HTTPQuerier struct {
	client *resty.Client
}

func NewHTTPQuerier(baseURL string, timeout time.Duration) *HTTPQuerier {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	return &HTTPQuerier{client: client}
}

// QueryParams encodes q the way the search endpoint expects.
func QueryParams(q Query) url.Values {
	v := url.Values{}
	if t := strings.TrimSpace(q.Text); t != "" {
		v.Set("q", t)
	}
	for _, f := range q.Families {
		v.Add("family", f)
	}
	if q.RiskBand != "" {
		v.Set("risk_band", q.RiskBand)
	}
	if q.MaturityBefore != nil {
		v.Set("maturity_before", q.MaturityBefore.Format("2006-01-02"))
	}
	v.Set("page", strconv.Itoa(q.Page))
	size := q.PageSize
	if size <= 0 {
		size = PageSize
	}
	v.Set("page_size", strconv.Itoa(size))
	return v
}

func (h *HTTPQuerier) Search(ctx context.Context, q Query) (Page, error) {
	var page Page
	var apiErr struct {
		Error string `json:"error"`
	}
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(QueryParams(q)).
		SetResult(&page).
		SetError(&apiErr).
		Get("/api/v1/assets/search")
	if err != nil {
		return Page{}, fmt.Errorf("failed to call search api: %w", err)
	}
	if resp.IsError() {
		return Page{}, fmt.Errorf("search api returned %d: %s", resp.StatusCode(), apiErr.Error)
	}
	return page, nil
}
