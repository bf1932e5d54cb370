package slot

import "errors"

var (
	// ErrSlotNotFound is returned when the visit slot does not exist.
	ErrSlotNotFound = errors.New("slot.repository: visit slot not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
