package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	executordto "github.com/brunotrento11/Teste-sub000/internal/executor/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/config"
	"github.com/brunotrento11/Teste-sub000/pkg/common"
	pkgconfig "github.com/brunotrento11/Teste-sub000/pkg/config"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newSchedulerService(jobs *mockJobRepo, schedules *mockScheduleRepo, pub *fakePublisher) *schedulerService {
	cfg := &config.Config{Redis: pkgconfig.Redis{StreamMaxLen: 1000}}
	return &schedulerService{
		jobRepo:      jobs,
		scheduleRepo: schedules,
		publisher:    pub,
		logger:       logger.NewNop(),
		cfg:          cfg,
		now:          func() time.Time { return fixedNow },
	}
}

func TestSchedulerService_ProcessJobs(t *testing.T) {
	jobs := &mockJobRepo{}
	schedules := &mockScheduleRepo{}
	pub := &fakePublisher{}

	due := []entity.TaskSchedule{{ID: 1, JobID: 5, CronExpression: "0 * * * *", IsActive: true}}
	schedules.On("FindDue", mock.Anything, fixedNow).Return(due, nil)
	jobs.On("FindByID", mock.Anything, uint(5)).Return(&entity.Job{
		ID:      5,
		Type:    entity.JobTypeCVMRisk,
		Payload: datatypes.JSON(`{"chunkSize":25,"chunkIndex":3,"asOf":"2024-01-01T00:00:00Z"}`),
	}, nil)

	schedules.On("MarkExecuted", mock.Anything, uint(1), fixedNow, fixedNow.Add(time.Hour)).Return(nil)

	newSchedulerService(jobs, schedules, pub).ProcessJobs(context.Background())

	require.Len(t, pub.calls, 1)
	assert.Equal(t, common.RedisStreamRiskJobInvocation, pub.calls[0].Stream)
	assert.Equal(t, int64(1000), pub.calls[0].MaxLen)
	assert.True(t, pub.calls[0].Approx)

	raw := pub.calls[0].Values.(map[string]interface{})["payload"].([]byte)
	var inv executordto.StreamInvocation
	require.NoError(t, json.Unmarshal(raw, &inv))
	assert.Equal(t, string(entity.JobTypeCVMRisk), inv.FunctionName)
	assert.Equal(t, uint(5), inv.JobID)
	require.NotNil(t, inv.Request.ChunkIndex)
	assert.Equal(t, 0, *inv.Request.ChunkIndex)
	assert.Equal(t, 25, *inv.Request.ChunkSize)
	require.NotNil(t, inv.Request.AsOf)
	assert.Equal(t, fixedNow, *inv.Request.AsOf)

	schedules.AssertCalled(t, "MarkExecuted", mock.Anything, uint(1), fixedNow, fixedNow.Add(time.Hour))
}

func TestSchedulerService_PublishFailureKeepsScheduleDue(t *testing.T) {
	jobs := &mockJobRepo{}
	schedules := &mockScheduleRepo{}
	pub := &fakePublisher{err: errors.New("connection refused")}

	schedules.On("FindDue", mock.Anything, fixedNow).Return([]entity.TaskSchedule{{ID: 2, JobID: 6, CronExpression: "@daily", IsActive: true}}, nil)
	jobs.On("FindByID", mock.Anything, uint(6)).Return(&entity.Job{ID: 6, Type: entity.JobTypeAnbimaSync}, nil)

	newSchedulerService(jobs, schedules, pub).ProcessJobs(context.Background())

	assert.Len(t, pub.calls, 1)
	schedules.AssertNotCalled(t, "MarkExecuted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSchedulerService_SingleTickerPayloadHasNoChunk(t *testing.T) {
	inv, err := buildInvocation(&entity.Job{ID: 1, Type: entity.JobTypeBrapiRisk, Payload: datatypes.JSON(`{"ticker":"PETR4"}`)}, fixedNow)
	require.NoError(t, err)

	assert.Nil(t, inv.Request.ChunkIndex)
	assert.Nil(t, inv.Request.AsOf)
	require.NotNil(t, inv.Request.Ticker)
	assert.Equal(t, "PETR4", *inv.Request.Ticker)
	assert.Equal(t, fixedNow, inv.EnqueuedAt)
}

func TestSchedulerService_FindDueFailure(t *testing.T) {
	schedules := &mockScheduleRepo{}
	pub := &fakePublisher{}
	schedules.On("FindDue", mock.Anything, fixedNow).Return(nil, errors.New("db down"))

	newSchedulerService(&mockJobRepo{}, schedules, pub).ProcessJobs(context.Background())

	assert.Empty(t, pub.calls)
}
