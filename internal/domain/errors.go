package domain

import "errors"

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrStepNotFound = errors.New("plan step not found")
)
