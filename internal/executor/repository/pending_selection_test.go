package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	cycleStart  = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	staleCutoff = cycleStart.Add(-7 * 24 * time.Hour)
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func failingDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := dryRunDB(t)
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:fail", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("connection reset"))
	}))
	return db
}

func render(db *gorm.DB, stmt *gorm.Statement) string {
	return db.Dialector.Explain(stmt.SQL.String(), stmt.Vars...)
}

func cycleSelection() Selection {
	return Selection{AsOf: cycleStart, StaleBefore: staleCutoff}
}

func TestMarketAssetPending_Predicate(t *testing.T) {
	db := dryRunDB(t)
	repo := &marketAssetRepository{db: db}

	stmt := repo.pending(context.Background(), cycleSelection()).Find(&[]entity.MarketAsset{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "last_risk_calculation IS NULL")
	assert.Contains(t, sql, "last_risk_calculation < $1")
	assert.Contains(t, sql, "last_risk_calculation >= $2")
	assert.Contains(t, sql, "risk_score IS NULL AND last_risk_error IS NOT NULL")
	assert.Equal(t, []interface{}{staleCutoff, cycleStart}, stmt.Vars)
}

// An asset marked unavailable keeps the sentinel score with a fresh timestamp, so only the
// staleness window can bring it back.
func TestMarketAssetPending_UnavailableSentinelNotReselected(t *testing.T) {
	db := dryRunDB(t)
	repo := &marketAssetRepository{db: db}

	stmt := repo.pending(context.Background(), cycleSelection()).Find(&[]entity.MarketAsset{}).Statement
	sql := stmt.SQL.String()

	assert.NotContains(t, sql, "risk_score = -1")
	assert.NotContains(t, sql, "risk_score < 0")

	markedAt := cycleStart.Add(-48 * time.Hour)
	require.Len(t, stmt.Vars, 2)
	assert.False(t, markedAt.Before(stmt.Vars[0].(time.Time)))
	assert.True(t, markedAt.Before(stmt.Vars[1].(time.Time)))
}

func TestMarketAssetPending_SingleTicker(t *testing.T) {
	db := dryRunDB(t)
	repo := &marketAssetRepository{db: db}

	sel := cycleSelection()
	sel.Ticker = "petr4"
	stmt := repo.pending(context.Background(), sel).Find(&[]entity.MarketAsset{}).Statement

	assert.Contains(t, stmt.SQL.String(), "UPPER(ticker) = UPPER($1)")
	assert.NotContains(t, stmt.SQL.String(), "last_risk_calculation")
	assert.Equal(t, []interface{}{"petr4"}, stmt.Vars)
}

func TestMarketAssetPage_ThreeChunks(t *testing.T) {
	db := dryRunDB(t)
	repo := &marketAssetRepository{db: db}

	tests := []struct {
		name   string
		offset int
		want   string
	}{
		{name: "first chunk", offset: 0, want: "ORDER BY id LIMIT 50"},
		{name: "second chunk", offset: 50, want: "ORDER BY id LIMIT 50 OFFSET 50"},
		{name: "last chunk", offset: 100, want: "ORDER BY id LIMIT 50 OFFSET 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := repo.page(context.Background(), cycleSelection(), tt.offset, 50).Find(&[]entity.MarketAsset{}).Statement
			got := render(db, stmt)
			assert.Contains(t, got, tt.want)
			assert.Equal(t, staleCutoff, stmt.Vars[0])
			assert.Equal(t, cycleStart, stmt.Vars[1])
		})
	}
}

func TestMarketAssetPage_PrioritizeLiquid(t *testing.T) {
	db := dryRunDB(t)
	repo := &marketAssetRepository{db: db}

	sel := cycleSelection()
	sel.PrioritizeLiquid = true
	stmt := repo.page(context.Background(), sel, 0, 10).Find(&[]entity.MarketAsset{}).Statement

	assert.Contains(t, stmt.SQL.String(), "ORDER BY average_volume DESC,id")
}

func TestMarketAssetRepository_QueryErrors(t *testing.T) {
	repo := NewMarketAssetRepository(failingDB(t))

	total, err := repo.CountPending(context.Background(), cycleSelection())
	assert.Error(t, err)
	assert.Zero(t, total)

	assets, err := repo.ListPending(context.Background(), cycleSelection(), 0, 50)
	assert.EqualError(t, err, "connection reset")
	assert.Nil(t, assets)
}

func TestFixedIncomePending_Predicate(t *testing.T) {
	db := dryRunDB(t)
	repo := &fixedIncomeRepository{db: db}

	stmt := repo.pending(context.Background(), entity.SourceANBIMA, cycleSelection()).Find(&[]entity.FixedIncomeAsset{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "source = $1")
	assert.Contains(t, sql, "last_risk_calculation < $2")
	assert.Contains(t, sql, "last_risk_calculation >= $3")
	assert.Contains(t, sql, "NOT EXISTS (SELECT 1 FROM risk_scores rs WHERE rs.asset_type = $4")
	assert.Equal(t, []interface{}{entity.SourceANBIMA, staleCutoff, cycleStart, entity.RiskScoreAssetFixedIncome}, stmt.Vars)
}

func TestFixedIncomePending_SingleCode(t *testing.T) {
	db := dryRunDB(t)
	repo := &fixedIncomeRepository{db: db}

	sel := cycleSelection()
	sel.Ticker = "cra0240032n"
	stmt := repo.pending(context.Background(), entity.SourceCVM, sel).Find(&[]entity.FixedIncomeAsset{}).Statement

	assert.Contains(t, stmt.SQL.String(), "UPPER(code) = UPPER($2)")
	assert.NotContains(t, stmt.SQL.String(), "NOT EXISTS")
	assert.Equal(t, []interface{}{entity.SourceCVM, "cra0240032n"}, stmt.Vars)
}

func TestFixedIncomePage_ChunkOffsets(t *testing.T) {
	db := dryRunDB(t)
	repo := &fixedIncomeRepository{db: db}

	sel := cycleSelection()
	sel.PrioritizeLiquid = true
	stmt := repo.page(context.Background(), entity.SourceANBIMA, sel, 100, 50).Find(&[]entity.FixedIncomeAsset{}).Statement

	got := render(db, stmt)
	assert.Contains(t, got, "ORDER BY liquidity DESC NULLS LAST,id LIMIT 50 OFFSET 100")
}

func TestFixedIncomeRepository_QueryErrors(t *testing.T) {
	repo := NewFixedIncomeRepository(failingDB(t))

	total, err := repo.CountPending(context.Background(), entity.SourceCVM, cycleSelection())
	assert.Error(t, err)
	assert.Zero(t, total)

	assets, err := repo.ListPending(context.Background(), entity.SourceCVM, cycleSelection(), 0, 50)
	assert.EqualError(t, err, "connection reset")
	assert.Nil(t, assets)
}
