package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkotelnikov/HVS-VisitService/internal/api/handlers"
	getAvailableSlots "github.com/vkotelnikov/HVS-VisitService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBedID    = "invalid bed ID"
	msgMissingFrom     = "from parameter is required"
	msgMissingTo       = "to parameter is required"
	msgInvalidInstant  = "invalid timestamp, expected RFC3339 or YYYY-MM-DDTHH:MM:SS"
	msgBedNotFound     = "bed not found"
	msgNotABed         = "location unit is not a bed"
	msgInvalidInterval = "invalid interval"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/beds/{bedId}/slots
// Query params: from (required), to (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bedID, err := strconv.ParseInt(vars["bedId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /beds/{id}/slots - Invalid bed ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBedID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /beds/{id}/slots - Missing from parameter: bed_id=%d", bedID)
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	toStr := r.URL.Query().Get("to")
	if toStr == "" {
		h.logger.Warn("GET /beds/{id}/slots - Missing to parameter: bed_id=%d", bedID)
		handlers.RespondBadRequest(w, msgMissingTo)
		return
	}

	from, err := ParseInstant(fromStr)
	if err != nil {
		h.logger.Warn("GET /beds/{id}/slots - Invalid from: bed_id=%d, error=%v", bedID, err)
		handlers.RespondBadRequest(w, msgInvalidInstant)
		return
	}

	to, err := ParseInstant(toStr)
	if err != nil {
		h.logger.Warn("GET /beds/{id}/slots - Invalid to: bed_id=%d, error=%v", bedID, err)
		handlers.RespondBadRequest(w, msgInvalidInstant)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		BedID: bedID,
		From:  from,
		To:    to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBedNotFound):
			h.logger.Warn("GET /beds/{id}/slots - Bed not found: bed_id=%d", bedID)
			handlers.RespondNotFound(w, msgBedNotFound)

		case errors.Is(err, getAvailableSlots.ErrNotABed):
			h.logger.Warn("GET /beds/{id}/slots - Unit is not a bed: bed_id=%d", bedID)
			handlers.RespondBadRequest(w, msgNotABed)

		case errors.Is(err, getAvailableSlots.ErrInvalidInterval), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /beds/{id}/slots - Invalid interval: bed_id=%d, error=%v", bedID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /beds/{id}/slots - Failed to get slots: bed_id=%d, error=%v", bedID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /beds/{id}/slots - Slots retrieved: bed_id=%d, slots_count=%d", bedID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
