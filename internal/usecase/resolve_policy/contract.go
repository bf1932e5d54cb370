package resolve_policy

import (
	"context"
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// HierarchyService resolves ancestor chains for location units.
type HierarchyService interface {
	Ancestors(ctx context.Context, unitID int64) ([]*domain.LocationUnit, error)
}

// HospitalRepository provides the hospital record owning the bed. The
// hospital timezone drives the interpretation of daily visiting windows.
type HospitalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hospital, error)
}

// RuleSetRepository provides active rule sets for a set of scopes.
type RuleSetRepository interface {
	GetActiveByScopes(ctx context.Context, scopeIDs []int64, from, to time.Time) ([]*domain.RuleSet, error)
}

// ExceptionRepository provides active exceptions for a set of scopes.
type ExceptionRepository interface {
	GetActiveByScopes(ctx context.Context, scopeIDs []int64, from, to time.Time) ([]*domain.RuleException, error)
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
