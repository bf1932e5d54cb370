package get_appointment

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	Reference          string  `json:"reference"`
	SlotID             int64   `json:"slotId"`
	BedID              int64   `json:"bedId"`
	VisitorID          int64   `json:"visitorId"`
	Status             string  `json:"status"`
	StartsAt           string  `json:"startsAt"`
	EndsAt             string  `json:"endsAt"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
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
		BedID:              view.Slot.BedID,
		VisitorID:          appt.VisitorID,
		Status:             string(appt.Status),
		StartsAt:           view.Slot.StartsAt.Format(time.RFC3339),
		EndsAt:             view.Slot.EndsAt.Format(time.RFC3339),
		Notes:              appt.Notes,
		CancellationReason: appt.CancellationReason,
		CancelledAt:        cancelledAt,
		CreatedAt:          appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          appt.UpdatedAt.Format(time.RFC3339),
	}
}
