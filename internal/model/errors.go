package model

import "errors"

// Error kinds shared by every storage backend. Repositories and
// usecases wrap these with context; the delivery layer translates
// them into response statuses.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
)
