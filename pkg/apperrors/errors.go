package apperrors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrFeatureDisabled    = errors.New("feature disabled")
	ErrWebsiteUnavailable = errors.New("website content could not be fetched reliably")
)
