package book_appointment

import "errors"

var (
	// ErrSlotNotFound - the slot does not exist.
	ErrSlotNotFound = errors.New("book_appointment: slot not found")
	// ErrVisitorNotFound - the visitor does not exist.
	ErrVisitorNotFound = errors.New("book_appointment: visitor not found")
	// ErrSlotUnavailable - the slot is blocked, in the past, on an
	// inactive bed, or already at capacity.
	ErrSlotUnavailable = errors.New("book_appointment: slot unavailable")
	// ErrInvalidInput - request validation failed.
	ErrInvalidInput = errors.New("book_appointment: invalid input")
	// ErrInternal - unexpected failure in storage or a downstream service.
	ErrInternal = errors.New("book_appointment: internal error")
)
