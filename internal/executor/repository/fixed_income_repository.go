package repository

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FixedIncomeRepository reads and updates the ANBIMA and CVM working sets.
type FixedIncomeRepository interface {
	CountPending(ctx context.Context, source entity.AssetSource, sel Selection) (int64, error)
	ListPending(ctx context.Context, source entity.AssetSource, sel Selection, offset, limit int) ([]entity.FixedIncomeAsset, error)
	FindByID(ctx context.Context, id uint) (*entity.FixedIncomeAsset, error)
	Upsert(ctx context.Context, assets []entity.FixedIncomeAsset) (int64, error)
	MarkCalculated(ctx context.Context, id uint, at time.Time) error
	MarkError(ctx context.Context, id uint, reason string) error
}

type fixedIncomeRepository struct {
	db *gorm.DB
}

func NewFixedIncomeRepository(db *gorm.DB) FixedIncomeRepository {
	return &fixedIncomeRepository{db: db}
}

// pending selects assets never calculated, stale, calculated during the current cycle, or
// lacking a stored risk score.
func (r *fixedIncomeRepository) pending(ctx context.Context, source entity.AssetSource, sel Selection) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.FixedIncomeAsset{}).Where("source = ?", source)
	if sel.IsSingle() {
		return q.Where("UPPER(code) = UPPER(?)", sel.Ticker)
	}
	return q.Where(
		`(last_risk_calculation IS NULL OR last_risk_calculation < ? OR last_risk_calculation >= ?
		OR NOT EXISTS (SELECT 1 FROM risk_scores rs WHERE rs.asset_type = ? AND rs.asset_id = fixed_income_assets.id))`,
		sel.StaleBefore, sel.AsOf, entity.RiskScoreAssetFixedIncome,
	)
}

func (r *fixedIncomeRepository) CountPending(ctx context.Context, source entity.AssetSource, sel Selection) (int64, error) {
	var total int64
	if err := r.pending(ctx, source, sel).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *fixedIncomeRepository) ListPending(ctx context.Context, source entity.AssetSource, sel Selection, offset, limit int) ([]entity.FixedIncomeAsset, error) {
	var assets []entity.FixedIncomeAsset
	if err := r.page(ctx, source, sel, offset, limit).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *fixedIncomeRepository) page(ctx context.Context, source entity.AssetSource, sel Selection, offset, limit int) *gorm.DB {
	q := r.pending(ctx, source, sel)
	if sel.PrioritizeLiquid {
		q = q.Order("liquidity DESC NULLS LAST")
	}
	return q.Order("id").Offset(offset).Limit(limit)
}

func (r *fixedIncomeRepository) FindByID(ctx context.Context, id uint) (*entity.FixedIncomeAsset, error) {
	var asset entity.FixedIncomeAsset
	if err := r.db.WithContext(ctx).First(&asset, id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// Upsert inserts or refreshes assets on (source, code). Risk bookkeeping columns are left untouched.
func (r *fixedIncomeRepository) Upsert(ctx context.Context, assets []entity.FixedIncomeAsset) (int64, error) {
	if len(assets) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source"}, {Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"asset_type", "issuer", "indexer", "rate", "unit_price", "standard_deviation",
			"duration", "maturity_date", "updated_at",
		}),
	}).CreateInBatches(&assets, 200)
	return res.RowsAffected, res.Error
}

func (r *fixedIncomeRepository) MarkCalculated(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.FixedIncomeAsset{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_risk_calculation": at,
		"last_risk_error":       nil,
	}).Error
}

func (r *fixedIncomeRepository) MarkError(ctx context.Context, id uint, reason string) error {
	return r.db.WithContext(ctx).Model(&entity.FixedIncomeAsset{}).Where("id = ?", id).
		Update("last_risk_error", reason).Error
}
