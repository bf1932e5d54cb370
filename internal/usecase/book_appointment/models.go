package book_appointment

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// Request carries the booking parameters.
type Request struct {
	SlotID    int64
	VisitorID int64
	Notes     *string
}

// Response describes the created appointment.
type Response struct {
	ID        int64                    `json:"id"`
	Reference string                   `json:"reference"`
	SlotID    int64                    `json:"slot_id"`
	VisitorID int64                    `json:"visitor_id"`
	Status    domain.AppointmentStatus `json:"status"`
	StartsAt  time.Time                `json:"starts_at"`
	EndsAt    time.Time                `json:"ends_at"`
	CreatedAt time.Time                `json:"created_at"`
}
