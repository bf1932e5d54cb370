package visitor

import "errors"

var (
	// ErrVisitorNotFound is returned when the visitor does not exist.
	ErrVisitorNotFound = errors.New("visitor.repository: visitor not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("visitor.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("visitor.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("visitor.repository: failed to scan row")
)
