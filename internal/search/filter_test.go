package search

import (
	"testing"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func codes(rows []entity.AssetSearchRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.AssetCode)
	}
	return out
}

func TestClientFilters_Apply(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []entity.AssetSearchRow{
		{AssetCode: "CDB-A", DisplayName: "CDB Banco Alfa", RiskScore: utils.ToPointer(5), RiskCategory: utils.ToPointer("Baixo"),
			Profitability: utils.ToPointer(11.5), MaturityDate: utils.ToPointer(now.AddDate(0, 6, 0))},
		{AssetCode: "DEB-B", DisplayName: "Debênture Energia", Issuer: utils.ToPointer("Elétrica SA"), RiskScore: utils.ToPointer(12),
			RiskCategory: utils.ToPointer("Moderado"), Profitability: utils.ToPointer(16.0), MaturityDate: utils.ToPointer(now.AddDate(7, 0, 0))},
		{AssetCode: "CRI-C", DisplayName: "CRI Shopping", RiskCategory: utils.ToPointer("Alto"), Profitability: nil},
		{AssetCode: "LCI-D", DisplayName: "LCI Imobiliária", RiskScore: utils.ToPointer(3), RiskCategory: utils.ToPointer("Baixo"),
			Profitability: utils.ToPointer(9.0), MaturityDate: utils.ToPointer(now.AddDate(2, 0, 0))},
	}

	tests := []struct {
		name    string
		filters ClientFilters
		want    []string
	}{
		{"no filters keeps order", ClientFilters{}, []string{"CDB-A", "DEB-B", "CRI-C", "LCI-D"}},
		{"text folds accents", ClientFilters{Text: "debenture"}, []string{"DEB-B"}},
		{"text matches issuer", ClientFilters{Text: "eletrica"}, []string{"DEB-B"}},
		{"risk category", ClientFilters{RiskCategory: "baixo"}, []string{"CDB-A", "LCI-D"}},
		{"profitability bucket", ClientFilters{Profitability: Profit10To15}, []string{"CDB-A"}},
		{"maturity bucket", ClientFilters{Maturity: Maturity1To5Years}, []string{"LCI-D"}},
		{"sort risk asc nulls last", ClientFilters{Sort: []SortKey{{Field: SortRiskScore}}}, []string{"LCI-D", "CDB-A", "DEB-B", "CRI-C"}},
		{"sort risk desc nulls last", ClientFilters{Sort: []SortKey{{Field: SortRiskScore, Desc: true}}}, []string{"DEB-B", "CDB-A", "LCI-D", "CRI-C"}},
		{
			"multi key sort",
			ClientFilters{Sort: []SortKey{{Field: SortMaturity}, {Field: SortCode, Desc: true}}},
			[]string{"CDB-A", "LCI-D", "DEB-B", "CRI-C"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(tt.filters.Apply(rows, now)))
		})
	}
}

func TestRiskBandRange(t *testing.T) {
	lo, hi, ok := RiskBandRange(RiskBandModerate)
	assert.True(t, ok)
	assert.Equal(t, 7, lo)
	assert.Equal(t, 13, hi)

	_, _, ok = RiskBandRange("extremo")
	assert.False(t, ok)
}

func TestQueryParams(t *testing.T) {
	maturity := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)
	v := QueryParams(Query{
		ServerFilters: ServerFilters{Text: " petr ", Families: []string{FamilyStocks, FamilyTaxExempt}, RiskBand: RiskBandLow, MaturityBefore: &maturity},
		Page:          2,
	})

	assert.Equal(t, "petr", v.Get("q"))
	assert.Equal(t, []string{"acoes", "isentos"}, v["family"])
	assert.Equal(t, "baixo", v.Get("risk_band"))
	assert.Equal(t, "2030-12-31", v.Get("maturity_before"))
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "100", v.Get("page_size"))
}
