package domain

import "errors"

// Error taxonomy shared across services and handlers. Services return these
// (possibly wrapped); handlers map them to HTTP statuses.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
)
