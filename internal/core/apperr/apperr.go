package apperr

import "errors"

// Sentinel errors shared by services and the HTTP layer. Repositories
// translate storage-level "record not found" into ErrNotFound so callers
// never depend on gorm error values.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
)
