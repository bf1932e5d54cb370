package update_appointment_status

import (
	"context"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

type AppointmentService interface {
	Transition(ctx context.Context, id int64, target domain.AppointmentStatus) (*appointments.AppointmentView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
