package application

import "errors"

var (
	ErrNotFound             = errors.New("application not found")
	ErrForbidden            = errors.New("application belongs to another caller")
	ErrJobNotEligible       = errors.New("job does not accept applications")
	ErrDuplicateApplication = errors.New("an active application for this job already exists")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrAlreadyWithdrawn     = errors.New("application already withdrawn")
	// ErrBusy is the only retryable error: a lock wait timed out.
	ErrBusy = errors.New("resource busy, retry later")
)
