package appointments

import (
	"context"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// AppointmentRepository is the slice of appointment storage the lifecycle
// service needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByVisitor(ctx context.Context, visitorID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status, from domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason *string, from domain.AppointmentStatus) error
}

// SlotRepository resolves the slot behind an appointment for enriched reads.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VisitSlot, error)
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
