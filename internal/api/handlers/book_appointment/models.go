package book_appointment

import (
	"time"

	bookAppointment "github.com/vkotelnikov/HVS-VisitService/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	SlotID    int64   `json:"slotId"`
	VisitorID int64   `json:"visitorId"`
	Notes     *string `json:"notes,omitempty"`
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
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *BookAppointmentRequest) ToUseCaseRequest() *bookAppointment.Request {
	return &bookAppointment.Request{
		SlotID:    r.SlotID,
		VisitorID: r.VisitorID,
		Notes:     r.Notes,
	}
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		Reference: resp.Reference,
		SlotID:    resp.SlotID,
		VisitorID: resp.VisitorID,
		Status:    string(resp.Status),
		StartsAt:  resp.StartsAt.Format(time.RFC3339),
		EndsAt:    resp.EndsAt.Format(time.RFC3339),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
