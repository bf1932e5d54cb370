package regenerate_slots

import (
	"context"
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
)

// LocationUnitRepository is the slice of location storage the regenerator
// needs: the scope unit itself and every bed beneath it.
type LocationUnitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LocationUnit, error)
	ListBedsUnder(ctx context.Context, unitID int64) ([]*domain.LocationUnit, error)
}

// PolicyResolver resolves the effective visiting policy for a bed.
type PolicyResolver interface {
	Execute(ctx context.Context, req *resolve_policy.Request) (*resolve_policy.Response, error)
}

// SlotRepository is the slice of slot storage the regenerator needs.
type SlotRepository interface {
	DeleteRegenerable(ctx context.Context, bedIDs []int64, from, to time.Time) (int64, error)
	UpsertMany(ctx context.Context, slots []*domain.VisitSlot) error
}

// TransactionManager runs the delete-and-rematerialize step atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider returns the current time. Injected for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
