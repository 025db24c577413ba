package dto

import "github.com/brunotrento11/Teste-sub000/internal/entity"

// ListAlertsRequest binds the anomaly alert filters.
type ListAlertsRequest struct {
	FunctionName   string `query:"function_name"`
	Severity       string `query:"severity"`
	ExecutionID    uint   `query:"execution_id"`
	Unacknowledged bool   `query:"unacknowledged"`
	Limit          int    `query:"limit"`
	Offset         int    `query:"offset"`
}

// AlertListResponse is one page of anomaly alerts, newest first.
type AlertListResponse struct {
	Items []entity.AnomalyAlert `json:"items"`
	Total int64                 `json:"total"`
}

// AcknowledgeAlertRequest closes an alert.
type AcknowledgeAlertRequest struct {
	AcknowledgedBy  string `json:"acknowledged_by"`
	ResolutionNotes string `json:"resolution_notes"`
}
