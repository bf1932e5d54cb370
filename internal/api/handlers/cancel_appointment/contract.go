package cancel_appointment

import (
	"context"

	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

type AppointmentService interface {
	Cancel(ctx context.Context, id int64, reason string) (*appointments.AppointmentView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
