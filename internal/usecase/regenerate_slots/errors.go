package regenerate_slots

import "errors"

var (
	// ErrUnitNotFound is returned when the scope unit does not exist.
	ErrUnitNotFound = errors.New("regenerate_slots: location unit not found")

	// ErrInvalidInterval is returned on a malformed time range.
	ErrInvalidInterval = errors.New("regenerate_slots: invalid interval")

	// ErrInvalidInput is returned on malformed request fields.
	ErrInvalidInput = errors.New("regenerate_slots: invalid input data")

	// ErrPolicyConflict is surfaced when a bed's resolved policy does not
	// partition the interval. Fatal to the whole regeneration: the
	// transaction rolls back and nothing is partially applied.
	ErrPolicyConflict = errors.New("regenerate_slots: resolved policy is contradictory")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("regenerate_slots: internal error")
)
