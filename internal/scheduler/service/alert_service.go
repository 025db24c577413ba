package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/repository"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
)

// AlertService lists anomaly alerts and records operator acknowledgements.
type AlertService interface {
	List(ctx context.Context, req *dto.ListAlertsRequest) (*dto.AlertListResponse, error)
	Acknowledge(ctx context.Context, id uint, req *dto.AcknowledgeAlertRequest) (*entity.AnomalyAlert, error)
}

// NewAlertService creates a new alert service.
func NewAlertService(alertRepo repository.AnomalyAlertRepository, logger *logger.Logger) AlertService {
	return &alertService{
		alertRepo: alertRepo,
		logger:    logger,
		now:       time.Now,
	}
}

type alertService struct {
	alertRepo repository.AnomalyAlertRepository
	logger    *logger.Logger
	now       func() time.Time
}

func (s *alertService) List(ctx context.Context, req *dto.ListAlertsRequest) (*dto.AlertListResponse, error) {
	if req.Severity != "" && !validSeverity(req.Severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, req.Severity)
	}
	items, total, err := s.alertRepo.List(ctx, repository.AlertFilter{
		FunctionName:   req.FunctionName,
		Severity:       req.Severity,
		ExecutionID:    req.ExecutionID,
		Unacknowledged: req.Unacknowledged,
		Limit:          clampLimit(req.Limit),
		Offset:         max(req.Offset, 0),
	})
	if err != nil {
		s.logger.Error("Failed to list alerts", logger.ErrorField(err))
		return nil, err
	}
	return &dto.AlertListResponse{Items: items, Total: total}, nil
}

// Acknowledge closes an open alert. Acknowledging twice returns ErrAlreadyAcknowledged.
func (s *alertService) Acknowledge(ctx context.Context, id uint, req *dto.AcknowledgeAlertRequest) (*entity.AnomalyAlert, error) {
	by := strings.TrimSpace(req.AcknowledgedBy)
	if by == "" {
		return nil, fmt.Errorf("%w: acknowledged_by is required", ErrValidation)
	}

	if _, err := s.alertRepo.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "alert", id)
	}

	updated, err := s.alertRepo.Acknowledge(ctx, id, by, req.ResolutionNotes, s.now())
	if err != nil {
		s.logger.Error("Failed to acknowledge alert", logger.ErrorField(err), logger.Field("alert_id", id))
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: alert %d", ErrAlreadyAcknowledged, id)
	}

	s.logger.Info("Alert acknowledged", logger.Field("alert_id", id), logger.StringField("by", by))
	return s.alertRepo.FindByID(ctx, id)
}

func validSeverity(s string) bool {
	switch entity.Severity(s) {
	case entity.SeverityInfo, entity.SeverityWarning, entity.SeverityCritical:
		return true
	}
	return false
}
