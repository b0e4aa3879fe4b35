package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrNotConfigured         = errors.New("not configured")
	ErrJobRunning            = errors.New("job already running")
)
