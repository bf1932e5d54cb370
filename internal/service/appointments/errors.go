package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidTransition is returned when the requested status change is
	// not allowed from the appointment's current status.
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrInternal is returned on unexpected storage failures.
	ErrInternal = errors.New("appointments: internal error")
)
