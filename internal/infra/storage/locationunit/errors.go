package locationunit

import "errors"

var (
	// ErrUnitNotFound is returned when the location unit does not exist.
	ErrUnitNotFound = errors.New("locationunit.repository: location unit not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("locationunit.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("locationunit.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("locationunit.repository: failed to scan row")
)
