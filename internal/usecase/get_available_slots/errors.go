package get_available_slots

import "errors"

var (
	// ErrBedNotFound is returned when the bed unit does not exist.
	ErrBedNotFound = errors.New("get_available_slots: bed not found")

	// ErrNotABed is returned when the unit exists but is not a bed.
	ErrNotABed = errors.New("get_available_slots: location unit is not a bed")

	// ErrInvalidInterval is returned on a malformed time range.
	ErrInvalidInterval = errors.New("get_available_slots: invalid interval")

	// ErrPolicyConflict is returned when the resolved policy does not
	// partition the interval. This indicates an engine invariant violation:
	// it is fatal to the request and logged for investigation, never
	// silently recovered.
	ErrPolicyConflict = errors.New("get_available_slots: resolved policy is contradictory")

	// ErrInvalidInput is returned on malformed request fields.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
