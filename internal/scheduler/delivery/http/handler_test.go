package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/service"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockJobService struct {
	mock.Mock
}

func (m *mockJobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.JobResponse)
	return resp, args.Error(1)
}

func (m *mockJobService) GetJobByID(ctx context.Context, id uint) (*dto.JobResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.JobResponse)
	return resp, args.Error(1)
}

func (m *mockJobService) GetAllJobs(ctx context.Context) ([]*dto.JobResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]*dto.JobResponse)
	return resp, args.Error(1)
}

func (m *mockJobService) UpdateJob(ctx context.Context, id uint, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.JobResponse)
	return resp, args.Error(1)
}

func (m *mockJobService) DeleteJob(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockAlertService struct {
	mock.Mock
}

func (m *mockAlertService) List(ctx context.Context, req *dto.ListAlertsRequest) (*dto.AlertListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AlertListResponse)
	return resp, args.Error(1)
}

func (m *mockAlertService) Acknowledge(ctx context.Context, id uint, req *dto.AcknowledgeAlertRequest) (*entity.AnomalyAlert, error) {
	args := m.Called(ctx, id, req)
	alert, _ := args.Get(0).(*entity.AnomalyAlert)
	return alert, args.Error(1)
}

func newServer(jobs service.JobService, alerts service.AlertService) *echo.Echo {
	e := echo.New()
	api := e.Group("/api/v1")
	NewJobHandler(jobs, nil, logger.NewNop()).RegisterRoutes(api.Group("/jobs"))
	NewAlertHandler(alerts).RegisterRoutes(api.Group("/alerts"))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJobHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad cron", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: job 1", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		jobs := &mockJobService{}
		jobs.On("GetJobByID", mock.Anything, uint(1)).Return(nil, tt.err)

		rec := do(newServer(jobs, nil), http.MethodGet, "/api/v1/jobs/1", "")
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

func TestJobHandler_InvalidID(t *testing.T) {
	rec := do(newServer(&mockJobService{}, nil), http.MethodDelete, "/api/v1/jobs/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobHandler_CreateJob(t *testing.T) {
	jobs := &mockJobService{}
	jobs.On("CreateJob", mock.Anything, mock.MatchedBy(func(r *dto.CreateJobRequest) bool {
		return r.Type == "calculate-brapi-risk" && len(r.Schedules) == 1
	})).Return(&dto.JobResponse{ID: 1, Type: "calculate-brapi-risk"}, nil)

	rec := do(newServer(jobs, nil), http.MethodPost, "/api/v1/jobs",
		`{"name":"brapi","type":"calculate-brapi-risk","schedules":[{"cron_expression":"@daily","is_active":true}]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAlertHandler_AcknowledgeConflict(t *testing.T) {
	alerts := &mockAlertService{}
	alerts.On("Acknowledge", mock.Anything, uint(5), &dto.AcknowledgeAlertRequest{AcknowledgedBy: "ops"}).
		Return(nil, fmt.Errorf("%w: alert 5", service.ErrAlreadyAcknowledged))

	rec := do(newServer(nil, alerts), http.MethodPatch, "/api/v1/alerts/5/ack", `{"acknowledged_by":"ops"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already acknowledged")
}
