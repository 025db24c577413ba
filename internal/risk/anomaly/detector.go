package anomaly

import (
	"fmt"
	"math"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/pkg/utils"
)

// Input is what the detector needs for one terminal execution.
type Input struct {
	Current entity.ExecutionRecord
	// Previous is the most recent earlier terminal execution of the same job, nil when none exists.
	Previous *entity.ExecutionRecord
	// Baseline is the most recent earlier successful or partial execution, used for metric comparisons.
	Baseline *entity.ExecutionRecord
}

// Detect drafts alerts for a terminal execution. Drafts carry ExecutionID and FunctionName
// of the current record and are not persisted here.
func Detect(in Input, policy Policy) []entity.AnomalyAlert {
	cur := in.Current
	if in.Previous == nil {
		return []entity.AnomalyAlert{newAlert(cur, entity.AlertNoHistory, entity.SeverityInfo, "history",
			nil, nil, nil, "No previous execution to compare against")}
	}

	var alerts []entity.AnomalyAlert

	if policy.AlertOnPreviousFailure && in.Previous.Status.Class() == entity.ClassFailure {
		alerts = append(alerts, newAlert(cur, entity.AlertExecutionFailure, entity.SeverityCritical, "status",
			nil, nil, nil, fmt.Sprintf("Previous execution #%d ended with status %s", in.Previous.ID, in.Previous.Status)))
	}

	if in.Previous.CompletedAt != nil && policy.StaleAfter > 0 {
		gap := cur.StartedAt.Sub(*in.Previous.CompletedAt)
		if gap > policy.StaleAfter {
			expected := policy.StaleAfter.Hours() / 24
			actual := gap.Hours() / 24
			alerts = append(alerts, newAlert(cur, entity.AlertStaleData, entity.SeverityWarning, "days_since_last_execution",
				&expected, &actual, relativeChange(expected, actual),
				fmt.Sprintf("Last completed execution was %.1f days ago (limit %.0f days)", actual, expected)))
		}
	}

	// A failed run has no meaningful counts to compare.
	if cur.Status.Class() == entity.ClassFailure || in.Baseline == nil {
		return alerts
	}
	base := in.Baseline

	if base.TotalAssetsProcessed > 0 {
		expected := float64(base.TotalAssetsProcessed)
		actual := float64(cur.TotalAssetsProcessed)
		change := (actual - expected) / expected
		switch {
		case change < -policy.CountDrop:
			alerts = append(alerts, newAlert(cur, entity.AlertCountDrop, entity.SeverityWarning, "total_assets_processed",
				&expected, &actual, utils.ToPointer(round2(change*100)),
				fmt.Sprintf("Processed assets dropped from %.0f to %.0f (%.1f%%)", expected, actual, change*100)))
		case change > policy.CountSpike:
			alerts = append(alerts, newAlert(cur, entity.AlertCountSpike, entity.SeverityInfo, "total_assets_processed",
				&expected, &actual, utils.ToPointer(round2(change*100)),
				fmt.Sprintf("Processed assets rose from %.0f to %.0f (+%.1f%%)", expected, actual, change*100)))
		}
	}

	if cur.AvgRiskScore != nil && base.AvgRiskScore != nil && *base.AvgRiskScore != 0 {
		expected := *base.AvgRiskScore
		actual := *cur.AvgRiskScore
		change := (actual - expected) / expected
		if math.Abs(change) > policy.RiskShift {
			alerts = append(alerts, newAlert(cur, entity.AlertRiskShift, entity.SeverityWarning, "avg_risk_score",
				&expected, &actual, utils.ToPointer(round2(change*100)),
				fmt.Sprintf("Average risk score moved from %.2f to %.2f (%+.1f%%)", expected, actual, change*100)))
		}
	}

	return alerts
}

func newAlert(cur entity.ExecutionRecord, typ entity.AlertType, sev entity.Severity, metric string,
	expected, actual, deviation *float64, msg string) entity.AnomalyAlert {
	return entity.AnomalyAlert{
		ExecutionID:      cur.ID,
		FunctionName:     cur.FunctionName,
		AlertType:        typ,
		Severity:         sev,
		MetricName:       metric,
		ExpectedValue:    expected,
		ActualValue:      actual,
		DeviationPercent: deviation,
		Message:          msg,
	}
}

func relativeChange(expected, actual float64) *float64 {
	if expected == 0 {
		return nil
	}
	return utils.ToPointer(round2((actual - expected) / expected * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
