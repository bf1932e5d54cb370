package hospital

import "errors"

var (
	// ErrHospitalNotFound is returned when the hospital does not exist.
	ErrHospitalNotFound = errors.New("hospital.repository: hospital not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("hospital.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("hospital.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("hospital.repository: failed to scan row")
)
