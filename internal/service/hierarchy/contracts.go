package hierarchy

import (
	"context"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// LocationUnitRepository is the slice of the location-unit storage the
// hierarchy service needs.
type LocationUnitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LocationUnit, error)
	ListByHospital(ctx context.Context, hospitalID int64) ([]*domain.LocationUnit, error)
}

// Logger is the logging interface used by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
