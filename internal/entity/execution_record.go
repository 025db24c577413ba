package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ExecutionStatus is the raw status written by a job. Jobs use slightly different vocabularies;
// Class resolves every value into one of four outcomes.
type ExecutionStatus string

const (
	StatusRunning             ExecutionStatus = "running"
	StatusCompleted           ExecutionStatus = "completed"
	StatusCompletedWithErrors ExecutionStatus = "completed_with_errors"
	StatusFailed              ExecutionStatus = "failed"
	StatusSuccess             ExecutionStatus = "success"
	StatusPartial             ExecutionStatus = "partial"
	StatusError               ExecutionStatus = "error"
)

// StatusClass is the normalized outcome of an execution.
type StatusClass int

const (
	ClassRunning StatusClass = iota
	ClassSuccess
	ClassPartial
	ClassFailure
)

// Class maps the job-specific vocabulary into the normalized outcome.
func (s ExecutionStatus) Class() StatusClass {
	switch s {
	case StatusCompleted, StatusSuccess:
		return ClassSuccess
	case StatusCompletedWithErrors, StatusPartial:
		return ClassPartial
	case StatusFailed, StatusError:
		return ClassFailure
	default:
		return ClassRunning
	}
}

// IsTerminal reports whether the execution has finished.
func (s ExecutionStatus) IsTerminal() bool {
	return s.Class() != ClassRunning
}

// StatusVocabulary is the set of terminal statuses a job writes.
type StatusVocabulary struct {
	Success ExecutionStatus
	Partial ExecutionStatus
	Failure ExecutionStatus
}

var (
	// RiskJobVocabulary is used by the batch risk jobs.
	RiskJobVocabulary = StatusVocabulary{Success: StatusCompleted, Partial: StatusCompletedWithErrors, Failure: StatusFailed}
	// SyncVocabulary is used by the reference-data sync job.
	SyncVocabulary = StatusVocabulary{Success: StatusSuccess, Partial: StatusPartial, Failure: StatusError}
)

// Resolve picks the terminal status for a run with the given counts. A run that hit errors
// without processing anything failed.
func (v StatusVocabulary) Resolve(processed, errors int) ExecutionStatus {
	switch {
	case errors == 0:
		return v.Success
	case processed > 0:
		return v.Partial
	default:
		return v.Failure
	}
}

// ExecutionType describes how the run selected its working set.
type ExecutionType string

const (
	ExecutionTypeChunk  ExecutionType = "chunk"
	ExecutionTypeSingle ExecutionType = "single"
	ExecutionTypeSync   ExecutionType = "sync"
)

// ExecutionRecord is one row of the execution log. It is inserted as running and updated once
// when the run reaches a terminal state.
type ExecutionRecord struct {
	ID                         uint                               `gorm:"primaryKey" json:"id"`
	FunctionName               string                             `gorm:"not null;index" json:"function_name"`
	ExecutionType              ExecutionType                      `gorm:"not null" json:"execution_type"`
	ChunkIndex                 *int                               `json:"chunk_index"`
	Status                     ExecutionStatus                    `gorm:"not null" json:"status"`
	StartedAt                  time.Time                          `gorm:"not null" json:"started_at"`
	CompletedAt                *time.Time                         `json:"completed_at"`
	DurationMs                 int64                              `json:"duration_ms"`
	TotalAssetsProcessed       int                                `json:"total_assets_processed"`
	TotalAssetsSkipped         int                                `json:"total_assets_skipped"`
	TotalErrors                int                                `json:"total_errors"`
	DistributionByType         datatypes.JSONType[map[string]int] `gorm:"type:jsonb" json:"distribution_by_type"`
	DistributionByRiskCategory datatypes.JSONType[map[string]int] `gorm:"type:jsonb" json:"distribution_by_risk_category"`
	AvgRiskScore               *float64                           `json:"avg_risk_score"`
	MinRiskScore               *int                               `json:"min_risk_score"`
	MaxRiskScore               *int                               `json:"max_risk_score"`
	ErrorDetails               datatypes.JSONType[[]string]       `gorm:"type:jsonb" json:"error_details"`
	Metadata                   datatypes.JSONMap                  `gorm:"type:jsonb" json:"metadata"`
	CreatedAt                  time.Time                          `gorm:"autoCreateTime" json:"created_at"`
}

func (ExecutionRecord) TableName() string {
	return "execution_records"
}
