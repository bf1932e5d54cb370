package ruleset

import "errors"

var (
	// ErrRuleSetNotFound is returned when the rule set does not exist.
	ErrRuleSetNotFound = errors.New("ruleset.repository: rule set not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("ruleset.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("ruleset.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("ruleset.repository: failed to scan row")

	// ErrDecodePayload is returned when the stored policy payload cannot be
	// decoded.
	ErrDecodePayload = errors.New("ruleset.repository: failed to decode rule payload")
)
