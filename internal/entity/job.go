package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// JobType identifies which batch risk job a definition triggers.
type JobType string

const (
	JobTypeAnbimaRisk JobType = "precalculate-anbima-risks"
	JobTypeCVMRisk    JobType = "precalculate-cvm-risks"
	JobTypeBrapiRisk  JobType = "calculate-brapi-risk"
	JobTypeAnbimaSync JobType = "sync-anbima-data"
)

// IsValid reports whether t names a job the executor can run.
func (t JobType) IsValid() bool {
	switch t {
	case JobTypeAnbimaRisk, JobTypeCVMRisk, JobTypeBrapiRisk, JobTypeAnbimaSync:
		return true
	}
	return false
}

// Job is a schedulable risk job definition. Payload is the default invocation body.
type Job struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"not null"`
	Description string
	Type        JobType        `gorm:"not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	Timeout     int            // seconds, per chunk invocation
	Schedules   []TaskSchedule `gorm:"foreignKey:JobID"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Job) TableName() string {
	return "risk_jobs"
}

// TaskSchedule is a cron trigger for a Job.
type TaskSchedule struct {
	ID             uint         `gorm:"primaryKey"`
	JobID          uint         `gorm:"not null;index"`
	CronExpression string       `gorm:"not null"`
	IsActive       bool         `gorm:"default:true"`
	NextExecution  sql.NullTime
	LastExecution  sql.NullTime
	CreatedAt      time.Time    `gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime"`
}

func (TaskSchedule) TableName() string {
	return "task_schedules"
}
