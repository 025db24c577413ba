package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/executor/strategy"
	"github.com/brunotrento11/Teste-sub000/internal/risk/anomaly"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

const brapiJob = string(entity.JobTypeBrapiRisk)

type fixture struct {
	svc      *riskJobService
	st       *mockStrategy
	sync     *mockSync
	records  *mockRecords
	alerts   *mockAlerts
	locks    *mockLocks
	notifier *mockNotifier
	sleeps   int
	sleepErr func(n int) error
	updated  *entity.ExecutionRecord
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		st:       &mockStrategy{jobType: entity.JobTypeBrapiRisk},
		sync:     &mockSync{},
		records:  &mockRecords{},
		alerts:   &mockAlerts{},
		locks:    &mockLocks{},
		notifier: &mockNotifier{},
	}
	cfg := &config.Config{RiskJobs: config.RiskJobs{
		DefaultChunkSize: 50,
		FetchDelay:       500 * time.Millisecond,
		MaxErrorDetails:  30,
		BrapiStaleAfter:  7 * 24 * time.Hour,
	}}
	f.svc = &riskJobService{
		cfg:        cfg,
		logger:     logger.NewFromZap(zaptest.NewLogger(t)),
		records:    f.records,
		alerts:     f.alerts,
		locks:      f.locks,
		notifier:   f.notifier,
		strategies: map[entity.JobType]strategy.RiskJobStrategy{entity.JobTypeBrapiRisk: f.st},
		syncs:      map[entity.JobType]strategy.SyncStrategy{entity.JobTypeAnbimaSync: f.sync},
		owner:      "test-owner",
		now:        func() time.Time { return fixedNow },
		sleep: func(ctx context.Context, d time.Duration) error {
			f.sleeps++
			if f.sleepErr != nil {
				return f.sleepErr(f.sleeps)
			}
			return nil
		},
	}
	return f
}

// unlocked lets every lock acquisition succeed.
func (f *fixture) unlocked() *fixture {
	f.locks.On("Acquire", mock.Anything, mock.Anything, "test-owner").Return(true, nil)
	f.locks.On("Release", mock.Anything, mock.Anything, "test-owner").Return(nil)
	return f
}

// withRecords accepts record writes and reports no history to the detector.
func (f *fixture) withRecords() *fixture {
	f.records.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.ExecutionRecord).ID = 42
	}).Return(nil)
	f.records.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		f.updated = args.Get(1).(*entity.ExecutionRecord)
	}).Return(nil)
	return f
}

func (f *fixture) noHistory() *fixture {
	f.records.On("FindPreviousTerminal", mock.Anything, mock.Anything).Return(nil, nil)
	f.records.On("FindPreviousBaseline", mock.Anything, mock.Anything).Return(nil, nil)
	f.alerts.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	return f
}

func makeAssets(from, n int) []strategy.Asset {
	out := make([]strategy.Asset, n)
	for i := range out {
		out[i] = strategy.Asset{ID: uint(from + i + 1), Code: fmt.Sprintf("A%03d", from+i), AssetType: "stock"}
	}
	return out
}

func codeIs(code string) interface{} {
	return mock.MatchedBy(func(a strategy.Asset) bool { return a.Code == code })
}

func TestPlanChunk(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		index, size int
		wantChunks  int
		wantOffset  int
		wantInRange bool
		wantNext    *int
	}{
		{"first of three", 120, 0, 50, 3, 0, true, utils.ToPointer(1)},
		{"middle", 120, 1, 50, 3, 50, true, utils.ToPointer(2)},
		{"last", 120, 2, 50, 3, 100, true, nil},
		{"past the end", 120, 3, 50, 3, 150, false, nil},
		{"exact multiple", 100, 1, 50, 2, 50, true, nil},
		{"empty set", 0, 0, 50, 0, 0, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlanChunk(tt.total, tt.index, tt.size)
			assert.Equal(t, tt.wantChunks, p.TotalChunks)
			assert.Equal(t, tt.wantOffset, p.Offset)
			assert.Equal(t, tt.wantInRange, p.InRange)
			assert.Equal(t, tt.wantNext, p.NextIndex)
			assert.Equal(t, tt.wantNext != nil, p.HasMore)
		})
	}
}

func TestInvoke_SecondChunkOfThree(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()

	f.st.On("CountPending", mock.Anything, mock.MatchedBy(func(sel repository.Selection) bool {
		return sel.StaleBefore.Equal(fixedNow.Add(-7*24*time.Hour)) && sel.AsOf.Equal(fixedNow) && sel.Ticker == ""
	})).Return(int64(120), nil)
	f.st.On("ListPending", mock.Anything, mock.Anything, 50, 50).Return(makeAssets(50, 50), nil)
	f.st.On("Process", mock.Anything, mock.Anything, fixedNow).Return(strategy.Outcome{Score: 8, Category: "Moderado"}, nil)

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{
		ProcessAll: true,
		ChunkIndex: utils.ToPointer(1),
		ChunkSize:  utils.ToPointer(50),
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.ChunkIndex)
	assert.Equal(t, 3, resp.TotalChunks)
	assert.Equal(t, 50, resp.Processed)
	assert.Equal(t, 0, resp.Errors)
	assert.True(t, resp.HasMoreChunks)
	require.NotNil(t, resp.NextChunkIndex)
	assert.Equal(t, 2, *resp.NextChunkIndex)
	assert.Equal(t, int64(120), resp.TotalPending)
	assert.Equal(t, string(entity.StatusCompleted), resp.Status)
	assert.Equal(t, fixedNow, resp.AsOf)

	f.st.AssertNumberOfCalls(t, "Process", 50)
	assert.Equal(t, 49, f.sleeps)

	require.NotNil(t, f.updated)
	assert.Equal(t, entity.ExecutionTypeChunk, f.updated.ExecutionType)
	require.NotNil(t, f.updated.ChunkIndex)
	assert.Equal(t, 1, *f.updated.ChunkIndex)
	assert.Equal(t, map[string]int{"stock": 50}, f.updated.DistributionByType.Data())
	assert.Equal(t, map[string]int{"Moderado": 50}, f.updated.DistributionByRiskCategory.Data())
	assert.InDelta(t, 8.0, *f.updated.AvgRiskScore, 1e-9)

	next := resp.Next(dto.InvocationRequest{ProcessAll: true, ChunkSize: utils.ToPointer(50)})
	require.NotNil(t, next)
	assert.Equal(t, 2, *next.ChunkIndex)
	assert.Equal(t, fixedNow, *next.AsOf)
}

func TestInvoke_PerAssetFailuresDoNotAbort(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()

	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(3), nil)
	f.st.On("ListPending", mock.Anything, mock.Anything, 0, 50).Return(makeAssets(0, 3), nil)
	f.st.On("Process", mock.Anything, codeIs("A000"), fixedNow).Return(strategy.Outcome{Score: 5, Category: "Baixo"}, nil)
	f.st.On("Process", mock.Anything, codeIs("A001"), fixedNow).
		Return(strategy.Outcome{}, fmt.Errorf("no history: %w", repository.ErrAssetUnavailable))
	f.st.On("Process", mock.Anything, codeIs("A002"), fixedNow).Return(strategy.Outcome{}, errors.New("timeout"))

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, 1, resp.Errors)
	assert.False(t, resp.HasMoreChunks)
	assert.Nil(t, resp.NextChunkIndex)
	assert.Equal(t, string(entity.StatusCompletedWithErrors), resp.Status)
	assert.Len(t, resp.ErrorDetails, 2)
	assert.Equal(t, 5, *f.updated.MinRiskScore)
	assert.Equal(t, 5, *f.updated.MaxRiskScore)
}

func TestInvoke_ErrorDetailsAreCapped(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()
	f.svc.cfg.RiskJobs.MaxErrorDetails = 2

	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(4), nil)
	f.st.On("ListPending", mock.Anything, mock.Anything, 0, 50).Return(makeAssets(0, 4), nil)
	f.st.On("Process", mock.Anything, mock.Anything, fixedNow).Return(strategy.Outcome{}, errors.New("upstream 503"))

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, string(entity.StatusFailed), resp.Status)
	assert.Equal(t, 4, resp.Errors)
	assert.Len(t, resp.ErrorDetails, 2)
}

func TestInvoke_InterruptedChunkKeepsPartialWork(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()
	f.sleepErr = func(n int) error {
		if n == 2 {
			return context.Canceled
		}
		return nil
	}

	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(3), nil)
	f.st.On("ListPending", mock.Anything, mock.Anything, 0, 50).Return(makeAssets(0, 3), nil)
	f.st.On("Process", mock.Anything, mock.Anything, fixedNow).Return(strategy.Outcome{Score: 10, Category: "Moderado"}, nil)

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Processed)
	assert.Equal(t, 1, resp.Errors)
	require.Len(t, resp.ErrorDetails, 1)
	assert.True(t, strings.HasPrefix(resp.ErrorDetails[0], "interrupted after 2 of 3 assets"))
}

func TestInvoke_CountFailureRecordsFailedExecution(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()
	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
	require.Error(t, err)
	require.NotNil(t, resp)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "connection refused")
	assert.Equal(t, entity.StatusFailed, f.updated.Status)
	assert.Equal(t, []string{"failed to count pending assets: connection refused"}, f.updated.ErrorDetails.Data())
	f.st.AssertNotCalled(t, "ListPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoke_ListingFailureAbortsChunk(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()
	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(10), nil)
	f.st.On("ListPending", mock.Anything, mock.Anything, 0, 50).Return(nil, errors.New("relation does not exist"))

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
	require.Error(t, err)

	assert.Equal(t, uint(42), resp.ExecutionID)
	assert.Equal(t, string(entity.StatusFailed), resp.Status)
	f.st.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoke_OutOfRangeChunkCreatesNoRecord(t *testing.T) {
	f := newFixture(t).unlocked()
	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(120), nil)

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{ChunkIndex: utils.ToPointer(5)})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.TotalChunks)
	assert.False(t, resp.HasMoreChunks)
	f.records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoke_Locked(t *testing.T) {
	f := newFixture(t)
	f.locks.On("Acquire", mock.Anything, mock.MatchedBy(func(scope repository.LockScope) bool {
		return scope.Key() == "risk_job_lock:calculate-brapi-risk:cycle"
	}), "test-owner").Return(false, nil)

	_, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
	assert.ErrorIs(t, err, ErrJobLocked)
	f.st.AssertNotCalled(t, "CountPending", mock.Anything, mock.Anything)
}

func TestInvoke_ProcessAllKeepsStaleWindow(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()

	var sel repository.Selection
	f.st.On("CountPending", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sel = args.Get(1).(repository.Selection)
	}).Return(int64(0), nil)

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{ProcessAll: true})
	require.NoError(t, err)
	assert.False(t, resp.HasMoreChunks)

	// An asset marked unavailable two days ago is inside the window and must not be selected.
	markedUnavailable := fixedNow.Add(-48 * time.Hour)
	assert.Equal(t, fixedNow.Add(-7*24*time.Hour), sel.StaleBefore)
	assert.False(t, markedUnavailable.Before(sel.StaleBefore))
}

func TestInvoke_OverlappingCycleStartsShareLock(t *testing.T) {
	f := newFixture(t).withRecords().noHistory()

	var keys []string
	f.locks.On("Acquire", mock.Anything, mock.Anything, "test-owner").Run(func(args mock.Arguments) {
		keys = append(keys, args.Get(1).(repository.LockScope).Key())
	}).Return(true, nil)
	f.locks.On("Release", mock.Anything, mock.Anything, "test-owner").Return(nil)
	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(0), nil)

	starts := []time.Time{fixedNow.Add(3 * time.Second), fixedNow.Add(9 * time.Second)}
	for _, start := range starts {
		at := start
		f.svc.now = func() time.Time { return at }
		_, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
		require.NoError(t, err)
	}

	redelivered := fixedNow
	_, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{AsOf: &redelivered, ChunkIndex: utils.ToPointer(0)})
	require.NoError(t, err)

	require.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[0], keys[2])
}

func TestInvoke_LaterChunksLockTheirSnapshot(t *testing.T) {
	f := newFixture(t).withRecords().noHistory()

	var scope repository.LockScope
	f.locks.On("Acquire", mock.Anything, mock.Anything, "test-owner").Run(func(args mock.Arguments) {
		scope = args.Get(1).(repository.LockScope)
	}).Return(true, nil)
	f.locks.On("Release", mock.Anything, mock.Anything, "test-owner").Return(nil)
	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(0), nil)

	asOf := fixedNow.Add(-time.Hour)
	_, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{AsOf: &asOf, ChunkIndex: utils.ToPointer(2)})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("risk_job_lock:%s:%d:2", brapiJob, asOf.Unix()), scope.Key())
}

func TestInvoke_UnknownJob(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Invoke(context.Background(), "calculate-everything", dto.InvocationRequest{})
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestInvoke_InvalidRequest(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{ChunkIndex: utils.ToPointer(-1)})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{ChunkSize: utils.ToPointer(5000)})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestInvoke_SingleTicker(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()
	f.st.On("CountPending", mock.Anything, mock.MatchedBy(func(sel repository.Selection) bool {
		return sel.Ticker == "PETR4"
	})).Return(int64(1), nil)
	f.st.On("ListPending", mock.Anything, mock.Anything, 0, 50).Return(makeAssets(0, 1), nil)
	f.st.On("Process", mock.Anything, mock.Anything, fixedNow).Return(strategy.Outcome{Score: 9, Category: "Moderado"}, nil)

	resp, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{Ticker: utils.ToPointer("PETR4")})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, entity.ExecutionTypeSingle, f.updated.ExecutionType)
	assert.Nil(t, f.updated.ChunkIndex)
}

func TestInvoke_SingleTickerNotFound(t *testing.T) {
	f := newFixture(t).unlocked()
	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{Ticker: utils.ToPointer("XXXX3")})
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestInvoke_StaleAlertIsNotified(t *testing.T) {
	f := newFixture(t).unlocked().withRecords()
	prevCompleted := fixedNow.Add(-10 * 24 * time.Hour)
	prev := &entity.ExecutionRecord{ID: 41, Status: entity.StatusCompleted, CompletedAt: &prevCompleted, TotalAssetsProcessed: 1}
	f.records.On("FindPreviousTerminal", mock.Anything, mock.Anything).Return(prev, nil)
	f.records.On("FindPreviousBaseline", mock.Anything, mock.Anything).Return(prev, nil)

	var stored []entity.AnomalyAlert
	f.alerts.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).([]entity.AnomalyAlert)
	}).Return(nil)
	f.notifier.On("SendMessage", mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "stale_data")
	})).Return(nil).Once()

	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.st.On("ListPending", mock.Anything, mock.Anything, 0, 50).Return(makeAssets(0, 1), nil)
	f.st.On("Process", mock.Anything, mock.Anything, fixedNow).Return(strategy.Outcome{Score: 9, Category: "Moderado"}, nil)

	_, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
	require.NoError(t, err)

	require.Len(t, stored, 1)
	assert.Equal(t, entity.AlertStaleData, stored[0].AlertType)
	assert.Equal(t, uint(42), stored[0].ExecutionID)
	f.notifier.AssertExpectations(t)
}

func TestInvoke_NoHistoryIsNotNotified(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()
	f.st.On("CountPending", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.st.On("ListPending", mock.Anything, mock.Anything, 0, 50).Return(makeAssets(0, 1), nil)
	f.st.On("Process", mock.Anything, mock.Anything, fixedNow).Return(strategy.Outcome{Score: 9, Category: "Moderado"}, nil)

	_, err := f.svc.Invoke(context.Background(), brapiJob, dto.InvocationRequest{})
	require.NoError(t, err)

	f.alerts.AssertCalled(t, "CreateBatch", mock.Anything, mock.MatchedBy(func(a []entity.AnomalyAlert) bool {
		return len(a) == 1 && a[0].AlertType == entity.AlertNoHistory
	}))
	f.notifier.AssertNotCalled(t, "SendMessage", mock.Anything)
}

func TestInvoke_Sync(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()
	f.sync.On("Sync", mock.Anything).Return(strategy.SyncResult{
		Processed:          10,
		Skipped:            2,
		Errors:             1,
		ErrorDetails:       []string{"public bonds feed: 502"},
		DistributionByType: map[string]int{"debenture": 10},
	}, nil)

	resp, err := f.svc.Invoke(context.Background(), string(entity.JobTypeAnbimaSync), dto.InvocationRequest{})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusPartial), resp.Status)
	assert.Equal(t, 10, resp.Processed)
	assert.Equal(t, int64(12), resp.TotalPending)
	assert.Equal(t, entity.ExecutionTypeSync, f.updated.ExecutionType)
	assert.Equal(t, map[string]int{"debenture": 10}, f.updated.DistributionByType.Data())
}

func TestInvoke_SyncFailure(t *testing.T) {
	f := newFixture(t).unlocked().withRecords().noHistory()
	f.sync.On("Sync", mock.Anything).Return(strategy.SyncResult{Errors: 2}, errors.New("feeds down"))

	resp, err := f.svc.Invoke(context.Background(), string(entity.JobTypeAnbimaSync), dto.InvocationRequest{})
	require.Error(t, err)
	assert.Equal(t, string(entity.StatusError), resp.Status)
	assert.False(t, resp.Success)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	last := &entity.ExecutionRecord{ID: 7, FunctionName: brapiJob, Status: entity.StatusCompleted, StartedAt: fixedNow.Add(-time.Hour)}
	f.records.On("FindLatestTerminal", mock.Anything, brapiJob).Return(last, nil)
	f.alerts.On("CountUnacknowledged", mock.Anything, brapiJob).Return(int64(2), nil)
	f.alerts.On("ListByExecution", mock.Anything, uint(7)).Return([]entity.AnomalyAlert{
		{AlertType: entity.AlertNoHistory, Severity: entity.SeverityInfo, Message: "first run"},
		{AlertType: entity.AlertCountDrop, Severity: entity.SeverityWarning, Message: "dropped"},
	}, nil)

	report, err := f.svc.Health(context.Background(), brapiJob)
	require.NoError(t, err)

	assert.Equal(t, anomaly.HealthWarning, report.Status)
	assert.Equal(t, []string{"count_drop: dropped"}, report.Anomalies)
	assert.Equal(t, int64(2), report.PendingAlertsCount)
}

func TestHealth_NeverRan(t *testing.T) {
	f := newFixture(t)
	f.records.On("FindLatestTerminal", mock.Anything, brapiJob).Return(nil, nil)
	f.alerts.On("CountUnacknowledged", mock.Anything, brapiJob).Return(int64(0), nil)

	report, err := f.svc.Health(context.Background(), brapiJob)
	require.NoError(t, err)
	assert.Equal(t, anomaly.HealthUnhealthy, report.Status)
}

func TestHealth_UnknownJob(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Health(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownJob)
}
