package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrConfiguration    = errors.New("api key not configured")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUpstream         = errors.New("provider failure")
	ErrRetryExhausted   = errors.New("provider retries exhausted")
	ErrContentBlocked   = errors.New("blocked by safety filters")
	ErrPersistence      = errors.New("persistence failure")
)
