package exception

import "github.com/vkotelnikov/HVS-VisitService/pkg/dbmetrics"

// Reuse the dbmetrics interfaces for database access.
type DBExecutor = dbmetrics.DBExecutor
