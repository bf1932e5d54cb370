package get_visitor_appointments

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkotelnikov/HVS-VisitService/internal/api/handlers"
	"github.com/vkotelnikov/HVS-VisitService/internal/api/middleware"
	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

const (
	msgInvalidVisitorID = "invalid visitor ID"
	msgInvalidStatus    = "invalid status filter"
	msgForbidden        = "access denied"
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

// Handle GET /api/v1/visitors/{visitorId}/appointments
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	visitorID, err := strconv.ParseInt(vars["visitorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /visitors/{id}/appointments - Invalid visitor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVisitorID)
		return
	}

	// Visitors see only their own history, staff see anyone's.
	if _, isStaff := middleware.GetStaffID(r.Context()); !isStaff {
		callerID, ok := middleware.GetVisitorID(r.Context())
		if !ok || callerID != visitorID {
			h.logger.Warn("GET /visitors/{id}/appointments - Access denied: visitor_id=%d", visitorID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	var status *domain.AppointmentStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := domain.ParseAppointmentStatus(raw)
		if !ok {
			h.logger.Warn("GET /visitors/{id}/appointments - Invalid status filter: visitor_id=%d, status=%q",
				visitorID, raw)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &parsed
	}

	views, err := h.service.GetByVisitor(r.Context(), visitorID, status)
	if err != nil {
		h.logger.Error("GET /visitors/{id}/appointments - Failed to list appointments: visitor_id=%d, error=%v",
			visitorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /visitors/{id}/appointments - Appointments retrieved: visitor_id=%d, count=%d",
		visitorID, len(views))
	handlers.RespondJSON(w, http.StatusOK, FromViews(visitorID, views))
}
