package dto

import (
	"database/sql"
	"time"
)

// CreateScheduleRequest defines the DTO for creating a new schedule.
type CreateScheduleRequest struct {
	JobID          uint   `json:"job_id"`
	CronExpression string `json:"cron_expression"`
	IsActive       bool   `json:"is_active"`
}

// UpdateScheduleRequest changes the fields that are present and keeps the others.
type UpdateScheduleRequest struct {
	CronExpression *string `json:"cron_expression,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// ScheduleResponse is a schedule with its job's function name. NextExecution is when the
// scheduler publishes the job's first chunk next.
type ScheduleResponse struct {
	ID             uint         `json:"id"`
	JobID          uint         `json:"job_id"`
	FunctionName   string       `json:"function_name,omitempty"`
	CronExpression string       `json:"cron_expression"`
	IsActive       bool         `json:"is_active"`
	NextExecution  sql.NullTime `json:"next_execution"`
	LastExecution  sql.NullTime `json:"last_execution"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
