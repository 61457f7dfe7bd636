// Package booking implements the reservation workflow: submission,
// conflict checks, admin verification, and reminders.
package booking

import (
	"errors"
	"fmt"

	"github.com/room-booking/backend/internal/storage/models"
)

var (
	// ErrNotFound is returned when the referenced booking does not exist.
	ErrNotFound = errors.New("booking not found")

	// ErrConflict is returned when a booking overlaps an existing one at
	// the same venue. Use errors.As with *ConflictError to see which.
	ErrConflict = errors.New("booking conflict")

	// ErrForbidden is returned when a user acts on a booking they do not
	// own without admin rights.
	ErrForbidden = errors.New("not allowed")

	// ErrAlreadyVerified is returned when verifying a booking that has
	// already left the pending state.
	ErrAlreadyVerified = errors.New("booking already verified")

	// ErrUnknownLocation is returned for venue identifiers outside the
	// configured set.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrInvalidStatus is returned when a verification decision is
	// neither approved nor rejected.
	ErrInvalidStatus = errors.New("invalid verification status")

	// ErrMissingField is returned when a required submission field is
	// blank.
	ErrMissingField = errors.New("missing required field")
)

// ConflictError reports the earliest-starting booking that blocks a
// requested time slot.
type ConflictError struct {
	Conflicting models.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot taken by %q (%s to %s)",
		e.Conflicting.EventName,
		e.Conflicting.StartDate.Format("2006-01-02 15:04"),
		e.Conflicting.EndDate.Format("2006-01-02 15:04"))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
