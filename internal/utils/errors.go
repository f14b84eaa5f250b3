package utils

import "errors"

// Common application errors used across services.
var (
	ErrNotFound       = errors.New("NOT_FOUND")
	ErrSlugTaken      = errors.New("SLUG_TAKEN")
	ErrInvalidID      = errors.New("INVALID_ID")
	ErrInvalidPayload = errors.New("INVALID_PAYLOAD")
	ErrInvalidStatus  = errors.New("INVALID_STATUS")
	ErrSlugRequired   = errors.New("SLUG_REQUIRED")
)
