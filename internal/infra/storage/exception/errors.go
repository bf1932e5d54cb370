package exception

import "errors"

var (
	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("exception.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("exception.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("exception.repository: failed to scan row")
)
