package service

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/executor/strategy"
	"github.com/stretchr/testify/mock"
)

type mockStrategy struct {
	mock.Mock
	jobType entity.JobType
}

func (m *mockStrategy) GetType() entity.JobType { return m.jobType }

func (m *mockStrategy) CountPending(ctx context.Context, sel repository.Selection) (int64, error) {
	args := m.Called(ctx, sel)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStrategy) ListPending(ctx context.Context, sel repository.Selection, offset, limit int) ([]strategy.Asset, error) {
	args := m.Called(ctx, sel, offset, limit)
	assets, _ := args.Get(0).([]strategy.Asset)
	return assets, args.Error(1)
}

func (m *mockStrategy) Process(ctx context.Context, asset strategy.Asset, now time.Time) (strategy.Outcome, error) {
	args := m.Called(ctx, asset, now)
	return args.Get(0).(strategy.Outcome), args.Error(1)
}

type mockSync struct {
	mock.Mock
}

func (m *mockSync) GetType() entity.JobType { return entity.JobTypeAnbimaSync }

func (m *mockSync) Sync(ctx context.Context) (strategy.SyncResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(strategy.SyncResult), args.Error(1)
}

type mockRecords struct {
	mock.Mock
}

func (m *mockRecords) Create(ctx context.Context, record *entity.ExecutionRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockRecords) Update(ctx context.Context, record *entity.ExecutionRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockRecords) FindPreviousTerminal(ctx context.Context, current *entity.ExecutionRecord) (*entity.ExecutionRecord, error) {
	args := m.Called(ctx, current)
	rec, _ := args.Get(0).(*entity.ExecutionRecord)
	return rec, args.Error(1)
}

func (m *mockRecords) FindPreviousBaseline(ctx context.Context, current *entity.ExecutionRecord) (*entity.ExecutionRecord, error) {
	args := m.Called(ctx, current)
	rec, _ := args.Get(0).(*entity.ExecutionRecord)
	return rec, args.Error(1)
}

func (m *mockRecords) FindLatestTerminal(ctx context.Context, functionName string) (*entity.ExecutionRecord, error) {
	args := m.Called(ctx, functionName)
	rec, _ := args.Get(0).(*entity.ExecutionRecord)
	return rec, args.Error(1)
}

type mockAlerts struct {
	mock.Mock
}

func (m *mockAlerts) CreateBatch(ctx context.Context, alerts []entity.AnomalyAlert) error {
	return m.Called(ctx, alerts).Error(0)
}

func (m *mockAlerts) CountUnacknowledged(ctx context.Context, functionName string) (int64, error) {
	args := m.Called(ctx, functionName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAlerts) ListByExecution(ctx context.Context, executionID uint) ([]entity.AnomalyAlert, error) {
	args := m.Called(ctx, executionID)
	alerts, _ := args.Get(0).([]entity.AnomalyAlert)
	return alerts, args.Error(1)
}

type mockLocks struct {
	mock.Mock
}

func (m *mockLocks) Acquire(ctx context.Context, scope repository.LockScope, owner string) (bool, error) {
	args := m.Called(ctx, scope, owner)
	return args.Bool(0), args.Error(1)
}

func (m *mockLocks) Release(ctx context.Context, scope repository.LockScope, owner string) error {
	return m.Called(ctx, scope, owner).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendMessage(text string) error {
	return m.Called(text).Error(0)
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

type mockIndicators struct {
	mock.Mock
}

func (m *mockIndicators) Create(ctx context.Context, indicator *entity.RiskIndicator) error {
	return m.Called(ctx, indicator).Error(0)
}
