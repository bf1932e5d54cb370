package book_appointment

import (
	"context"
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// SlotRepository is the slice of slot storage the booker needs. GetByID
// locks the slot row when called inside a transaction.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VisitSlot, error)
}

// AppointmentRepository is the slice of appointment storage the booker
// needs. ListActiveBySlot locks the active rows when called inside a
// transaction.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListActiveBySlot(ctx context.Context, slotID int64) ([]*domain.Appointment, error)
}

// VisitorRepository verifies the visitor exists.
type VisitorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Visitor, error)
}

// HierarchyService answers activity questions over the location tree.
type HierarchyService interface {
	IsActive(ctx context.Context, unitID int64) (bool, error)
}

// TransactionManager serializes the check-and-insert against concurrent
// bookers. The storage-side row locks plus serializable isolation are the
// source of truth: in-process locking alone would not survive multiple
// service instances.
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
