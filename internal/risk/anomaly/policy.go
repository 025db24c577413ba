// Package anomaly compares consecutive executions of a batch job and drafts typed alerts.
package anomaly

import (
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
)

// Policy holds the per-job thresholds. Jobs deliberately disagree on the count-drop
// threshold; keep one policy per job rather than a shared default.
type Policy struct {
	// CountDrop is the relative decrease (0.10 = -10%) past which count_drop fires.
	CountDrop float64
	// CountSpike is the relative increase past which count_spike fires.
	CountSpike float64
	// RiskShift is the relative change in average score past which risk_shift fires.
	RiskShift float64
	// StaleAfter is the maximum gap between the previous completion and this run.
	StaleAfter time.Duration
	// AlertOnPreviousFailure raises execution_failure when the prior run failed.
	AlertOnPreviousFailure bool
}

const day = 24 * time.Hour

var policies = map[entity.JobType]Policy{
	entity.JobTypeAnbimaRisk: {
		CountDrop:  0.20,
		CountSpike: 0.50,
		RiskShift:  0.15,
		StaleAfter: 7 * day,
	},
	entity.JobTypeCVMRisk: {
		CountDrop:              0.10,
		CountSpike:             0.50,
		RiskShift:              0.15,
		StaleAfter:             7 * day,
		AlertOnPreviousFailure: true,
	},
	entity.JobTypeBrapiRisk: {
		CountDrop:  0.20,
		CountSpike: 0.50,
		RiskShift:  0.15,
		StaleAfter: 7 * day,
	},
	entity.JobTypeAnbimaSync: {
		CountDrop:  0.20,
		CountSpike: 0.50,
		RiskShift:  0.15,
		StaleAfter: 30 * day,
	},
}

var defaultPolicy = Policy{
	CountDrop:  0.20,
	CountSpike: 0.50,
	RiskShift:  0.15,
	StaleAfter: 7 * day,
}

// PolicyFor returns the thresholds of a job, or a conservative default for unknown names.
func PolicyFor(functionName string) Policy {
	if p, ok := policies[entity.JobType(functionName)]; ok {
		return p
	}
	return defaultPolicy
}
