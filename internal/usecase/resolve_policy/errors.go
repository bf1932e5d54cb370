package resolve_policy

import "errors"

var (
	// ErrBedNotFound is returned when the bed unit does not exist.
	ErrBedNotFound = errors.New("resolve_policy: bed not found")

	// ErrNotABed is returned when the unit exists but is not a bed.
	ErrNotABed = errors.New("resolve_policy: location unit is not a bed")

	// ErrInvalidInterval is returned when the interval end is not strictly
	// after its start, or the range exceeds the resolution horizon.
	ErrInvalidInterval = errors.New("resolve_policy: invalid interval")

	// ErrCycleDetected is surfaced when the location tree is corrupt.
	ErrCycleDetected = errors.New("resolve_policy: cycle detected in location tree")

	// ErrInvalidInput is returned on malformed request fields.
	ErrInvalidInput = errors.New("resolve_policy: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("resolve_policy: internal error")
)
