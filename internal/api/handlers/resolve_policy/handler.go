package resolve_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkotelnikov/HVS-VisitService/internal/api/handlers"
	resolvePolicy "github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
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
	useCase ResolvePolicyUseCase
	logger  Logger
}

func NewHandler(useCase ResolvePolicyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/beds/{bedId}/policy
// Query params: from (required), to (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bedID, err := strconv.ParseInt(vars["bedId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /beds/{id}/policy - Invalid bed ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBedID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /beds/{id}/policy - Missing from parameter: bed_id=%d", bedID)
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	toStr := r.URL.Query().Get("to")
	if toStr == "" {
		h.logger.Warn("GET /beds/{id}/policy - Missing to parameter: bed_id=%d", bedID)
		handlers.RespondBadRequest(w, msgMissingTo)
		return
	}

	from, err := ParseInstant(fromStr)
	if err != nil {
		h.logger.Warn("GET /beds/{id}/policy - Invalid from: bed_id=%d, error=%v", bedID, err)
		handlers.RespondBadRequest(w, msgInvalidInstant)
		return
	}

	to, err := ParseInstant(toStr)
	if err != nil {
		h.logger.Warn("GET /beds/{id}/policy - Invalid to: bed_id=%d, error=%v", bedID, err)
		handlers.RespondBadRequest(w, msgInvalidInstant)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolvePolicy.Request{
		BedID: bedID,
		From:  from,
		To:    to,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolvePolicy.ErrBedNotFound):
			h.logger.Warn("GET /beds/{id}/policy - Bed not found: bed_id=%d", bedID)
			handlers.RespondNotFound(w, msgBedNotFound)

		case errors.Is(err, resolvePolicy.ErrNotABed):
			h.logger.Warn("GET /beds/{id}/policy - Unit is not a bed: bed_id=%d", bedID)
			handlers.RespondBadRequest(w, msgNotABed)

		case errors.Is(err, resolvePolicy.ErrInvalidInterval), errors.Is(err, resolvePolicy.ErrInvalidInput):
			h.logger.Warn("GET /beds/{id}/policy - Invalid interval: bed_id=%d, error=%v", bedID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /beds/{id}/policy - Failed to resolve policy: bed_id=%d, error=%v", bedID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /beds/{id}/policy - Policy resolved: bed_id=%d, segments=%d", bedID, len(result.Segments))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
