package get_appointment

import (
	"context"

	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id int64) (*appointments.AppointmentView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
