package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrTaskNotFound      = errors.New("task not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrEntryNotFound     = errors.New("time entry not found")
)
