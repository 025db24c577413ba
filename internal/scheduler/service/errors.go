package service

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrAlreadyAcknowledged = errors.New("alert already acknowledged")
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// notFound translates gorm's missing-row error into ErrNotFound.
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return err
}

func parseCron(expr string) (cron.Schedule, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cron expression %q: %v", ErrValidation, expr, err)
	}
	return sched, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}
