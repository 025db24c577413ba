package entity

import "time"

// AlertType classifies an anomaly found between two executions.
type AlertType string

const (
	AlertCountDrop        AlertType = "count_drop"
	AlertCountSpike       AlertType = "count_spike"
	AlertRiskShift        AlertType = "risk_shift"
	AlertStaleData        AlertType = "stale_data"
	AlertExecutionFailure AlertType = "execution_failure"
	AlertNoHistory        AlertType = "no_history"
)

// Severity of an alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AnomalyAlert is raised by the anomaly detector right after an execution terminates.
// Only acknowledgement mutates it afterwards.
type AnomalyAlert struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ExecutionID      uint       `gorm:"not null;index" json:"execution_id"`
	FunctionName     string     `gorm:"not null;index" json:"function_name"`
	AlertType        AlertType  `gorm:"not null" json:"alert_type"`
	Severity         Severity   `gorm:"not null" json:"severity"`
	MetricName       string     `json:"metric_name"`
	ExpectedValue    *float64   `json:"expected_value"`
	ActualValue      *float64   `json:"actual_value"`
	DeviationPercent *float64   `json:"deviation_percent"`
	Message          string     `json:"message"`
	IsAcknowledged   bool       `gorm:"default:false" json:"is_acknowledged"`
	AcknowledgedBy   *string    `json:"acknowledged_by"`
	AcknowledgedAt   *time.Time `json:"acknowledged_at"`
	ResolutionNotes  *string    `json:"resolution_notes"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (AnomalyAlert) TableName() string {
	return "anomaly_alerts"
}
