package strategy

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/stretchr/testify/mock"
)

type mockBrapi struct {
	mock.Mock
}

func (m *mockBrapi) GetHistory(ctx context.Context, ticker string) (*dto.BrapiQuoteResult, error) {
	args := m.Called(ctx, ticker)
	res, _ := args.Get(0).(*dto.BrapiQuoteResult)
	return res, args.Error(1)
}

type mockPrices struct {
	mock.Mock
}

func (m *mockPrices) Upsert(ctx context.Context, observations []entity.PriceObservation) error {
	return m.Called(ctx, observations).Error(0)
}

func (m *mockPrices) FindSince(ctx context.Context, ticker string, since time.Time) ([]entity.PriceObservation, error) {
	args := m.Called(ctx, ticker, since)
	obs, _ := args.Get(0).([]entity.PriceObservation)
	return obs, args.Error(1)
}

func (m *mockPrices) LastUpdated(ctx context.Context, ticker string) (*time.Time, error) {
	args := m.Called(ctx, ticker)
	t, _ := args.Get(0).(*time.Time)
	return t, args.Error(1)
}

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) Load(ctx context.Context, ticker string, now time.Time) ([]entity.PriceObservation, error) {
	args := m.Called(ctx, ticker, now)
	obs, _ := args.Get(0).([]entity.PriceObservation)
	return obs, args.Error(1)
}

func (m *mockHistory) Benchmark(ctx context.Context, ticker string, now time.Time) ([]entity.PriceObservation, error) {
	args := m.Called(ctx, ticker, now)
	obs, _ := args.Get(0).([]entity.PriceObservation)
	return obs, args.Error(1)
}

type mockMarketAssets struct {
	mock.Mock
}

func (m *mockMarketAssets) CountPending(ctx context.Context, sel repository.Selection) (int64, error) {
	args := m.Called(ctx, sel)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMarketAssets) ListPending(ctx context.Context, sel repository.Selection, offset, limit int) ([]entity.MarketAsset, error) {
	args := m.Called(ctx, sel, offset, limit)
	rows, _ := args.Get(0).([]entity.MarketAsset)
	return rows, args.Error(1)
}

func (m *mockMarketAssets) UpdateRisk(ctx context.Context, id uint, update repository.MarketRiskUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockMarketAssets) MarkUnavailable(ctx context.Context, id uint, reason string, at time.Time) error {
	return m.Called(ctx, id, reason, at).Error(0)
}

func (m *mockMarketAssets) MarkError(ctx context.Context, id uint, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

type mockFixedIncome struct {
	mock.Mock
}

func (m *mockFixedIncome) CountPending(ctx context.Context, source entity.AssetSource, sel repository.Selection) (int64, error) {
	args := m.Called(ctx, source, sel)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFixedIncome) ListPending(ctx context.Context, source entity.AssetSource, sel repository.Selection, offset, limit int) ([]entity.FixedIncomeAsset, error) {
	args := m.Called(ctx, source, sel, offset, limit)
	rows, _ := args.Get(0).([]entity.FixedIncomeAsset)
	return rows, args.Error(1)
}

func (m *mockFixedIncome) FindByID(ctx context.Context, id uint) (*entity.FixedIncomeAsset, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*entity.FixedIncomeAsset)
	return row, args.Error(1)
}

func (m *mockFixedIncome) Upsert(ctx context.Context, assets []entity.FixedIncomeAsset) (int64, error) {
	args := m.Called(ctx, assets)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFixedIncome) MarkCalculated(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockFixedIncome) MarkError(ctx context.Context, id uint, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

type mockScores struct {
	mock.Mock
}

func (m *mockScores) Upsert(ctx context.Context, score *entity.RiskScore) error {
	return m.Called(ctx, score).Error(0)
}

type mockScorer struct {
	mock.Mock
}

func (m *mockScorer) Score(ctx context.Context, indicators scoring.Indicators, meta scoring.AssetMetadata) (scoring.Result, error) {
	args := m.Called(ctx, indicators, meta)
	return args.Get(0).(scoring.Result), args.Error(1)
}

type mockAnbima struct {
	mock.Mock
}

func (m *mockAnbima) ListSecondaryMarket(ctx context.Context) ([]dto.AnbimaSecondaryMarketItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]dto.AnbimaSecondaryMarketItem)
	return items, args.Error(1)
}

func (m *mockAnbima) ListPublicBonds(ctx context.Context) ([]dto.AnbimaPublicBondItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]dto.AnbimaPublicBondItem)
	return items, args.Error(1)
}

type mockCVM struct {
	mock.Mock
}

func (m *mockCVM) GetOffer(ctx context.Context, offerNumber string) (*dto.CVMOffer, error) {
	args := m.Called(ctx, offerNumber)
	offer, _ := args.Get(0).(*dto.CVMOffer)
	return offer, args.Error(1)
}
