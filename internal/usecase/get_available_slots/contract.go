package get_available_slots

import (
	"context"
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
)

// PolicyResolver resolves the effective visiting policy for a bed.
type PolicyResolver interface {
	Execute(ctx context.Context, req *resolve_policy.Request) (*resolve_policy.Response, error)
}

// HierarchyService answers activity questions over the location tree.
type HierarchyService interface {
	IsActive(ctx context.Context, unitID int64) (bool, error)
}

// SlotRepository is the slice of slot storage the generator needs.
type SlotRepository interface {
	GetByBedAndRange(ctx context.Context, bedID int64, from, to time.Time) ([]*domain.VisitSlot, error)
	UpsertMany(ctx context.Context, slots []*domain.VisitSlot) error
}

// AppointmentRepository provides active-appointment counts per slot.
type AppointmentRepository interface {
	CountActiveBySlots(ctx context.Context, slotIDs []int64) (map[int64]int, error)
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
