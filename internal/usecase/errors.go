package usecase

import (
	"errors"
)

// Domain error taxonomy. Every error here is a terminal, user-visible
// condition; none are retried internally. Handlers map them to HTTP
// statuses with errors.Is.
var (
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("action not permitted for this role")
	ErrNotVerified       = errors.New("account is not verified")
	ErrCapacityExceeded  = errors.New("attendees exceed room capacity")
	ErrSlotConflict      = errors.New("time slot conflicts with an existing booking")
	ErrInvalidTransition = errors.New("current status does not allow this transition")
	ErrDuplicateIdentity = errors.New("identity card is already registered to another account")
	ErrAlreadyRated      = errors.New("booking already has feedback")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrNotFound          = errors.New("not found")
)
