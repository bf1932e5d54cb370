package get_visitor_appointments

import (
	"context"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

type AppointmentService interface {
	GetByVisitor(ctx context.Context, visitorID int64, status *domain.AppointmentStatus) ([]*appointments.AppointmentView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
