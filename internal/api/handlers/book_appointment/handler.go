package book_appointment

import (
	"errors"
	"net/http"

	"github.com/vkotelnikov/HVS-VisitService/internal/api/handlers"
	bookAppointment "github.com/vkotelnikov/HVS-VisitService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotNotFound       = "visit slot not found"
	msgVisitorNotFound    = "visitor not found"
	msgSlotUnavailable    = "visit slot is unavailable"
	msgInvalidRequest     = "invalid request"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: slot_id=%d, visitor_id=%d", req.SlotID, req.VisitorID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, bookAppointment.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookAppointment.ErrVisitorNotFound):
			h.logger.Warn("POST /appointments - Visitor not found: visitor_id=%d", req.VisitorID)
			handlers.RespondNotFound(w, msgVisitorNotFound)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid request: slot_id=%d, visitor_id=%d, error=%v",
				req.SlotID, req.VisitorID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: slot_id=%d, visitor_id=%d, error=%v",
				req.SlotID, req.VisitorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, slot_id=%d, visitor_id=%d, status=%s",
		result.ID, result.SlotID, result.VisitorID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
