package get_visitor_appointments

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

// AppointmentsResponse HTTP response model
type AppointmentsResponse struct {
	VisitorID    int64                 `json:"visitorId"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// AppointmentResponse is one appointment in the visitor's history.
type AppointmentResponse struct {
	ID        int64   `json:"id"`
	Reference string  `json:"reference"`
	SlotID    int64   `json:"slotId"`
	BedID     int64   `json:"bedId"`
	Status    string  `json:"status"`
	StartsAt  string  `json:"startsAt"`
	EndsAt    string  `json:"endsAt"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// FromViews converts the service views into the HTTP model.
func FromViews(visitorID int64, views []*appointments.AppointmentView) *AppointmentsResponse {
	items := make([]AppointmentResponse, 0, len(views))
	for _, view := range views {
		appt := view.Appointment
		items = append(items, AppointmentResponse{
			ID:        appt.ID,
			Reference: appt.Reference,
			SlotID:    appt.SlotID,
			BedID:     view.Slot.BedID,
			Status:    string(appt.Status),
			StartsAt:  view.Slot.StartsAt.Format(time.RFC3339),
			EndsAt:    view.Slot.EndsAt.Format(time.RFC3339),
			Notes:     appt.Notes,
			CreatedAt: appt.CreatedAt.Format(time.RFC3339),
		})
	}

	return &AppointmentsResponse{
		VisitorID:    visitorID,
		Appointments: items,
	}
}
