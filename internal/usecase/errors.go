package usecase

import "errors"

// Expected, caller-recoverable outcomes. Anything not wrapping one of these
// is an internal failure (storage or cache unavailable) and should be treated
// as such by transport layers.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflicting state")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
