package repository

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"

	"gorm.io/gorm"
)

// MarketRiskUpdate carries the score and indicators written back to a market asset.
type MarketRiskUpdate struct {
	Score        int
	Category     string
	Volatility   float64
	VaR95        float64
	SharpeRatio  float64
	MaxDrawdown  float64
	Beta         *float64
	CalculatedAt time.Time
}

// MarketAssetRepository reads and updates the Brapi working set.
type MarketAssetRepository interface {
	CountPending(ctx context.Context, sel Selection) (int64, error)
	ListPending(ctx context.Context, sel Selection, offset, limit int) ([]entity.MarketAsset, error)
	UpdateRisk(ctx context.Context, id uint, update MarketRiskUpdate) error
	MarkUnavailable(ctx context.Context, id uint, reason string, at time.Time) error
	MarkError(ctx context.Context, id uint, reason string) error
}

type marketAssetRepository struct {
	db *gorm.DB
}

func NewMarketAssetRepository(db *gorm.DB) MarketAssetRepository {
	return &marketAssetRepository{db: db}
}

// pending selects assets never calculated, stale before sel.StaleBefore, calculated during the
// current cycle (kept for stable offsets), or failed transiently without a score. Rows holding
// the unavailable sentinel carry a fresh timestamp and stay out until they go stale.
func (r *marketAssetRepository) pending(ctx context.Context, sel Selection) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.MarketAsset{})
	if sel.IsSingle() {
		return q.Where("UPPER(ticker) = UPPER(?)", sel.Ticker)
	}
	return q.Where(
		"(last_risk_calculation IS NULL OR last_risk_calculation < ? OR last_risk_calculation >= ? OR (risk_score IS NULL AND last_risk_error IS NOT NULL))",
		sel.StaleBefore, sel.AsOf,
	)
}

// CountPending counts the assets needing recalculation under sel.
func (r *marketAssetRepository) CountPending(ctx context.Context, sel Selection) (int64, error) {
	var total int64
	if err := r.pending(ctx, sel).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListPending returns one slice of the pending set in a stable order.
func (r *marketAssetRepository) ListPending(ctx context.Context, sel Selection, offset, limit int) ([]entity.MarketAsset, error) {
	var assets []entity.MarketAsset
	if err := r.page(ctx, sel, offset, limit).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *marketAssetRepository) page(ctx context.Context, sel Selection, offset, limit int) *gorm.DB {
	q := r.pending(ctx, sel)
	if sel.PrioritizeLiquid {
		q = q.Order("average_volume DESC")
	}
	return q.Order("id").Offset(offset).Limit(limit)
}

func (r *marketAssetRepository) UpdateRisk(ctx context.Context, id uint, u MarketRiskUpdate) error {
	return r.db.WithContext(ctx).Model(&entity.MarketAsset{}).Where("id = ?", id).Updates(map[string]interface{}{
		"risk_score":            u.Score,
		"risk_category":         u.Category,
		"volatility":            u.Volatility,
		"var_95":                u.VaR95,
		"sharpe_ratio":          u.SharpeRatio,
		"max_drawdown":          u.MaxDrawdown,
		"beta":                  u.Beta,
		"last_risk_calculation": u.CalculatedAt,
		"last_risk_error":       nil,
	}).Error
}

// MarkUnavailable stores the sentinel score so the asset leaves the pending set until it goes stale.
func (r *marketAssetRepository) MarkUnavailable(ctx context.Context, id uint, reason string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.MarketAsset{}).Where("id = ?", id).Updates(map[string]interface{}{
		"risk_score":            entity.RiskScoreUnavailable,
		"risk_category":         nil,
		"last_risk_calculation": at,
		"last_risk_error":       reason,
	}).Error
}

// MarkError records a transient failure without advancing last_risk_calculation.
func (r *marketAssetRepository) MarkError(ctx context.Context, id uint, reason string) error {
	return r.db.WithContext(ctx).Model(&entity.MarketAsset{}).Where("id = ?", id).
		Update("last_risk_error", reason).Error
}
