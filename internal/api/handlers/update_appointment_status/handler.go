package update_appointment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkotelnikov/HVS-VisitService/internal/api/handlers"
	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidStatus        = "invalid target status"
	msgUseCancelEndpoint    = "use the cancel endpoint to cancel an appointment"
	msgNotFound             = "appointment not found"
	msgInvalidTransition    = "status transition not allowed"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
// Body: {"status": "booked" | "denied" | "no_show" | "completed"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: appointment_id=%d, error=%v",
			appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	target, ok := domain.ParseAppointmentStatus(req.Status)
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid status: appointment_id=%d, status=%q",
			appointmentID, req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	// Cancellation records a reason and a timestamp, it has its own route.
	if target == domain.StatusCancelled {
		h.logger.Warn("PATCH /appointments/{id}/status - Cancellation via status endpoint: appointment_id=%d",
			appointmentID)
		handlers.RespondBadRequest(w, msgUseCancelEndpoint)
		return
	}

	view, err := h.service.Transition(r.Context(), appointmentID, target)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition: appointment_id=%d, target=%s, error=%v",
				appointmentID, target, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, target=%s, error=%v",
				appointmentID, target, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: appointment_id=%d, status=%s",
		appointmentID, target)
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}
