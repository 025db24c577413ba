package anomaly

import (
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
)

// HealthStatus is the coarse state reported by the health check.
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthWarning   HealthStatus = "warning"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// CurrentStats summarizes the last terminal execution.
type CurrentStats struct {
	TotalAssetsProcessed       int            `json:"total_assets_processed"`
	TotalErrors                int            `json:"total_errors"`
	AvgRiskScore               *float64       `json:"avg_risk_score"`
	DistributionByRiskCategory map[string]int `json:"distribution_by_risk_category"`
	DurationMs                 int64          `json:"duration_ms"`
}

// HealthReport is the body of the health-check invocation.
type HealthReport struct {
	Status             HealthStatus            `json:"status"`
	LastExecution      *entity.ExecutionRecord `json:"last_execution"`
	CurrentStats       *CurrentStats           `json:"current_stats"`
	Anomalies          []string                `json:"anomalies"`
	PendingAlertsCount int64                   `json:"pending_alerts_count"`
}

// Evaluate derives the health of a job. The job is unhealthy when it never ran, its last run
// failed, or the last run started more than twice the stale window ago; it is in warning
// while unacknowledged alerts or fresh anomalies exist.
func Evaluate(last *entity.ExecutionRecord, anomalies []string, pendingAlerts int64, policy Policy, now time.Time) HealthReport {
	if anomalies == nil {
		anomalies = []string{}
	}
	report := HealthReport{
		Status:             HealthHealthy,
		LastExecution:      last,
		Anomalies:          anomalies,
		PendingAlertsCount: pendingAlerts,
	}

	if last == nil {
		report.Status = HealthUnhealthy
		report.Anomalies = append(report.Anomalies, "no execution recorded")
		return report
	}

	report.CurrentStats = &CurrentStats{
		TotalAssetsProcessed:       last.TotalAssetsProcessed,
		TotalErrors:                last.TotalErrors,
		AvgRiskScore:               last.AvgRiskScore,
		DistributionByRiskCategory: last.DistributionByRiskCategory.Data(),
		DurationMs:                 last.DurationMs,
	}

	switch {
	case last.Status.Class() == entity.ClassFailure:
		report.Status = HealthUnhealthy
	case policy.StaleAfter > 0 && now.Sub(last.StartedAt) > 2*policy.StaleAfter:
		report.Status = HealthUnhealthy
	case pendingAlerts > 0 || len(anomalies) > 0:
		report.Status = HealthWarning
	}
	return report
}
