package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/search"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// incentivizedDebentureCondition matches tax-exempt infrastructure debentures, which share the
// debenture asset_type with taxable ones.
const incentivizedDebentureCondition = "(asset_type = 'debenture' AND (display_name ILIKE '%incentivad%' OR display_name ILIKE '%12.431%'))"

type assetSearchRepository struct {
	db *gorm.DB
}

// NewAssetSearchRepository returns a search.Querier over asset_search_view.
func NewAssetSearchRepository(db *gorm.DB) search.Querier {
	return &assetSearchRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into an ILIKE substring pattern. Wildcards typed by the user
// match literally under Postgres' default backslash escape.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

// BuildSearchConditions renders the WHERE clause of a server query. The not-expired condition is always present.
func BuildSearchConditions(f search.ServerFilters) (string, []interface{}) {
	qFilter := []string{"(maturity_date IS NULL OR maturity_date >= CURRENT_DATE)"}
	qFilterParam := []interface{}{}

	if text := strings.TrimSpace(f.Text); text != "" {
		like := containsPattern(text)
		qFilter = append(qFilter, "(asset_code ILIKE ? OR display_name ILIKE ? OR issuer ILIKE ? OR indexer ILIKE ?)")
		qFilterParam = append(qFilterParam, like, like, like, like)
	}

	if len(f.Families) > 0 {
		var types []string
		taxExempt := false
		for _, family := range f.Families {
			types = append(types, search.FamilyAssetTypes[family]...)
			if family == search.FamilyTaxExempt {
				taxExempt = true
			}
		}
		cond := "asset_type = ANY(?)"
		if taxExempt {
			cond = fmt.Sprintf("(%s OR %s)", cond, incentivizedDebentureCondition)
		}
		qFilter = append(qFilter, cond)
		qFilterParam = append(qFilterParam, pq.Array(types))
	}

	if lo, hi, ok := search.RiskBandRange(f.RiskBand); ok {
		qFilter = append(qFilter, "risk_score BETWEEN ? AND ?")
		qFilterParam = append(qFilterParam, lo, hi)
	}

	if f.MaturityBefore != nil {
		qFilter = append(qFilter, "maturity_date <= ?")
		qFilterParam = append(qFilterParam, *f.MaturityBefore)
	}

	return strings.Join(qFilter, " AND "), qFilterParam
}

// Search returns one page sorted by risk score ascending with unscored assets last.
func (r *assetSearchRepository) Search(ctx context.Context, q search.Query) (search.Page, error) {
	if q.PageSize <= 0 || q.PageSize > search.PageSize {
		q.PageSize = search.PageSize
	}
	if q.Page < 0 {
		q.Page = 0
	}

	where, params := BuildSearchConditions(q.ServerFilters)
	base := r.db.WithContext(ctx).Model(&entity.AssetSearchRow{}).Where(where, params...)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return search.Page{}, fmt.Errorf("failed to count search results: %w", err)
	}

	var items []entity.AssetSearchRow
	err := base.Session(&gorm.Session{}).
		Order("risk_score ASC NULLS LAST").
		Order("asset_code").
		Offset(q.Page * q.PageSize).
		Limit(q.PageSize).
		Find(&items).Error
	if err != nil {
		return search.Page{}, fmt.Errorf("failed to query search view: %w", err)
	}
	return search.Page{Items: items, Total: total}, nil
}
