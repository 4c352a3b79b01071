package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("access denied")
	ErrGenerationFailed  = errors.New("content generation failed")
	ErrPersistenceFailed = errors.New("content store failure")
	ErrInvalidInput      = errors.New("invalid input")
	ErrKindMismatch      = errors.New("project kind does not match export format")
)
