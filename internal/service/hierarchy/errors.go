package hierarchy

import "errors"

var (
	// ErrUnitNotFound is returned when the unit or one of its parent links
	// cannot be resolved.
	ErrUnitNotFound = errors.New("hierarchy: location unit not found")

	// ErrCycleDetected is returned when ancestor traversal revisits a unit.
	// This is structural corruption: it must never occur under correct
	// administration and is treated as fatal to the request.
	ErrCycleDetected = errors.New("hierarchy: cycle detected in location tree")

	// ErrInternal is returned on unexpected storage failures.
	ErrInternal = errors.New("hierarchy: internal error")
)
