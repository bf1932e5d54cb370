package regenerate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkotelnikov/HVS-VisitService/internal/api/handlers"
	regenerateSlots "github.com/vkotelnikov/HVS-VisitService/internal/usecase/regenerate_slots"
)

const (
	msgInvalidUnitID      = "invalid location unit ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInstant     = "invalid timestamp, expected RFC3339 or YYYY-MM-DDTHH:MM:SS"
	msgUnitNotFound       = "location unit not found"
	msgInvalidInterval    = "invalid interval"
)

type Handler struct {
	useCase RegenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase RegenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/location-units/{unitId}/slots/regenerate
// Body: {"from": "...", "to": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /location-units/{id}/slots/regenerate - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	var req RegenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /location-units/{id}/slots/regenerate - Invalid request body: unit_id=%d, error=%v",
			unitID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(unitID)
	if err != nil {
		h.logger.Warn("POST /location-units/{id}/slots/regenerate - Invalid timestamps: unit_id=%d, error=%v",
			unitID, err)
		handlers.RespondBadRequest(w, msgInvalidInstant)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, regenerateSlots.ErrUnitNotFound):
			h.logger.Warn("POST /location-units/{id}/slots/regenerate - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, regenerateSlots.ErrInvalidInterval), errors.Is(err, regenerateSlots.ErrInvalidInput):
			h.logger.Warn("POST /location-units/{id}/slots/regenerate - Invalid interval: unit_id=%d, error=%v",
				unitID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /location-units/{id}/slots/regenerate - Failed to regenerate: unit_id=%d, error=%v",
				unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /location-units/{id}/slots/regenerate - Regeneration done: unit_id=%d, beds=%d, deleted=%d, candidates=%d",
		unitID, result.BedsAffected, result.SlotsDeleted, result.Candidates)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
