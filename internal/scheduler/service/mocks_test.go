package service

import (
	"context"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type mockJobRepo struct {
	mock.Mock
}

func (m *mockJobRepo) Create(ctx context.Context, job *entity.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *mockJobRepo) FindByID(ctx context.Context, id uint) (*entity.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*entity.Job)
	return job, args.Error(1)
}

func (m *mockJobRepo) FindAll(ctx context.Context) ([]entity.Job, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Error(1)
}

func (m *mockJobRepo) Update(ctx context.Context, job *entity.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *mockJobRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *entity.TaskSchedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id uint) (*entity.TaskSchedule, error) {
	args := m.Called(ctx, id)
	schedule, _ := args.Get(0).(*entity.TaskSchedule)
	return schedule, args.Error(1)
}

func (m *mockScheduleRepo) FindAll(ctx context.Context) ([]entity.TaskSchedule, error) {
	args := m.Called(ctx)
	schedules, _ := args.Get(0).([]entity.TaskSchedule)
	return schedules, args.Error(1)
}

func (m *mockScheduleRepo) Update(ctx context.Context, schedule *entity.TaskSchedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockScheduleRepo) FindDue(ctx context.Context, now time.Time) ([]entity.TaskSchedule, error) {
	args := m.Called(ctx, now)
	schedules, _ := args.Get(0).([]entity.TaskSchedule)
	return schedules, args.Error(1)
}

func (m *mockScheduleRepo) MarkExecuted(ctx context.Context, id uint, last, next time.Time) error {
	return m.Called(ctx, id, last, next).Error(0)
}

type mockRecordRepo struct {
	mock.Mock
}

func (m *mockRecordRepo) FindByID(ctx context.Context, id uint) (*entity.ExecutionRecord, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*entity.ExecutionRecord)
	return record, args.Error(1)
}

func (m *mockRecordRepo) List(ctx context.Context, f repository.ExecutionFilter) ([]entity.ExecutionRecord, int64, error) {
	args := m.Called(ctx, f)
	records, _ := args.Get(0).([]entity.ExecutionRecord)
	return records, args.Get(1).(int64), args.Error(2)
}

type mockAlertRepo struct {
	mock.Mock
}

func (m *mockAlertRepo) FindByID(ctx context.Context, id uint) (*entity.AnomalyAlert, error) {
	args := m.Called(ctx, id)
	alert, _ := args.Get(0).(*entity.AnomalyAlert)
	return alert, args.Error(1)
}

func (m *mockAlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]entity.AnomalyAlert, int64, error) {
	args := m.Called(ctx, f)
	alerts, _ := args.Get(0).([]entity.AnomalyAlert)
	return alerts, args.Get(1).(int64), args.Error(2)
}

func (m *mockAlertRepo) Acknowledge(ctx context.Context, id uint, by, notes string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, by, notes, at)
	return args.Bool(0), args.Error(1)
}

// fakePublisher records XAdd calls and fails with err when set.
type fakePublisher struct {
	calls []*redis.XAddArgs
	err   error
}

func (p *fakePublisher) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	p.calls = append(p.calls, a)
	cmd := redis.NewStringCmd(ctx)
	if p.err != nil {
		cmd.SetErr(p.err)
	} else {
		cmd.SetVal("1-0")
	}
	return cmd
}
