package cancel_appointment

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason string `json:"reason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	Reference          string  `json:"reference"`
	SlotID             int64   `json:"slotId"`
	VisitorID          int64   `json:"visitorId"`
	Status             string  `json:"status"`
	StartsAt           string  `json:"startsAt"`
	EndsAt             string  `json:"endsAt"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromView converts the service view into the HTTP model.
func FromView(view *appointments.AppointmentView) *AppointmentResponse {
	appt := view.Appointment

	var cancelledAt *string
	if appt.CancelledAt != nil {
		s := appt.CancelledAt.Format(time.RFC3339)
		cancelledAt = &s
	}

	return &AppointmentResponse{
		ID:                 appt.ID,
		Reference:          appt.Reference,
		SlotID:             appt.SlotID,
		VisitorID:          appt.VisitorID,
		Status:             string(appt.Status),
		StartsAt:           view.Slot.StartsAt.Format(time.RFC3339),
		EndsAt:             view.Slot.EndsAt.Format(time.RFC3339),
		CancellationReason: appt.CancellationReason,
		CancelledAt:        cancelledAt,
		UpdatedAt:          appt.UpdatedAt.Format(time.RFC3339),
	}
}
