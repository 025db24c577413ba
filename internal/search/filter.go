package search

import (
	"sort"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/pkg/textnorm"
)

// Profitability buckets, in percent a year.
const (
	ProfitUpTo10  = "ate_10"
	Profit10To15  = "10_a_15"
	ProfitAbove15 = "acima_15"
)

// Maturity buckets relative to now.
const (
	MaturityUpTo1Year   = "ate_1_ano"
	Maturity1To5Years   = "1_a_5_anos"
	MaturityAbove5Years = "acima_5_anos"
)

// SortField names a sortable column.
type SortField string

const (
	SortRiskScore     SortField = "risk_score"
	SortProfitability SortField = "profitability"
	SortMaturity      SortField = "maturity_date"
	SortLiquidity     SortField = "liquidity"
	SortCode          SortField = "asset_code"
)

// SortKey is one level of a multi-key sort. Nulls always sort last.
type SortKey struct {
	Field SortField
	Desc  bool
}

// ClientFilters refine the already fetched rows without querying the server again.
type ClientFilters struct {
	Text          string
	RiskCategory  string
	Profitability string
	Maturity      string
	Sort          []SortKey
}

// Apply filters and sorts rows, returning a new slice.
func (f ClientFilters) Apply(rows []entity.AssetSearchRow, now time.Time) []entity.AssetSearchRow {
	text := NormalizeQuery(f.Text)
	out := make([]entity.AssetSearchRow, 0, len(rows))
	for _, r := range rows {
		if text != "" && !rowContains(r, text) {
			continue
		}
		if f.RiskCategory != "" && (r.RiskCategory == nil || !strings.EqualFold(*r.RiskCategory, f.RiskCategory)) {
			continue
		}
		if f.Profitability != "" && !inProfitBucket(r.Profitability, f.Profitability) {
			continue
		}
		if f.Maturity != "" && !inMaturityBucket(r.MaturityDate, f.Maturity, now) {
			continue
		}
		out = append(out, r)
	}
	if len(f.Sort) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, k := range f.Sort {
				if c := compareRows(out[i], out[j], k); c != 0 {
					return c < 0
				}
			}
			return false
		})
	}
	return out
}

func rowContains(r entity.AssetSearchRow, text string) bool {
	if strings.Contains(textnorm.Fold(r.AssetCode), text) || strings.Contains(textnorm.Fold(r.DisplayName), text) {
		return true
	}
	return r.Issuer != nil && strings.Contains(textnorm.Fold(*r.Issuer), text)
}

func inProfitBucket(p *float64, bucket string) bool {
	if p == nil {
		return false
	}
	switch bucket {
	case ProfitUpTo10:
		return *p < 10
	case Profit10To15:
		return *p >= 10 && *p <= 15
	case ProfitAbove15:
		return *p > 15
	default:
		return true
	}
}

func inMaturityBucket(m *time.Time, bucket string, now time.Time) bool {
	if m == nil {
		return false
	}
	oneYear := now.AddDate(1, 0, 0)
	fiveYears := now.AddDate(5, 0, 0)
	switch bucket {
	case MaturityUpTo1Year:
		return !m.After(oneYear)
	case Maturity1To5Years:
		return m.After(oneYear) && !m.After(fiveYears)
	case MaturityAbove5Years:
		return m.After(fiveYears)
	default:
		return true
	}
}

// compareRows orders a before b (-1), after (1) or equal (0) on k, keeping nulls last
// in either direction.
func compareRows(a, b entity.AssetSearchRow, k SortKey) int {
	switch k.Field {
	case SortRiskScore:
		return compareNullable(intPtrToFloat(a.RiskScore), intPtrToFloat(b.RiskScore), k.Desc)
	case SortProfitability:
		return compareNullable(a.Profitability, b.Profitability, k.Desc)
	case SortLiquidity:
		return compareNullable(a.Liquidity, b.Liquidity, k.Desc)
	case SortMaturity:
		return compareNullable(timePtrToFloat(a.MaturityDate), timePtrToFloat(b.MaturityDate), k.Desc)
	case SortCode:
		c := strings.Compare(a.AssetCode, b.AssetCode)
		if k.Desc {
			return -c
		}
		return c
	default:
		return 0
	}
}

func compareNullable(a, b *float64, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := 0
	if *a < *b {
		c = -1
	} else if *a > *b {
		c = 1
	}
	if desc {
		return -c
	}
	return c
}

func intPtrToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func timePtrToFloat(v *time.Time) *float64 {
	if v == nil {
		return nil
	}
	f := float64(v.Unix())
	return &f
}
