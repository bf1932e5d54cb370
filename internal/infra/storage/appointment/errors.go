package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStatusConflict is returned when a status write finds the appointment
	// no longer in the status the caller observed.
	ErrStatusConflict = errors.New("appointment.repository: appointment status changed concurrently")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
