package update_appointment_status

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	SlotID    int64  `json:"slotId"`
	VisitorID int64  `json:"visitorId"`
	Status    string `json:"status"`
	StartsAt  string `json:"startsAt"`
	EndsAt    string `json:"endsAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromView converts the service view into the HTTP model.
func FromView(view *appointments.AppointmentView) *AppointmentResponse {
	appt := view.Appointment

	return &AppointmentResponse{
		ID:        appt.ID,
		Reference: appt.Reference,
		SlotID:    appt.SlotID,
		VisitorID: appt.VisitorID,
		Status:    string(appt.Status),
		StartsAt:  view.Slot.StartsAt.Format(time.RFC3339),
		EndsAt:    view.Slot.EndsAt.Format(time.RFC3339),
		UpdatedAt: appt.UpdatedAt.Format(time.RFC3339),
	}
}
