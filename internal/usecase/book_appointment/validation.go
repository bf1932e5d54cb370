package book_appointment

import (
	"fmt"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slot_id must be positive, got %d", ErrInvalidInput, req.SlotID)
	}

	if req.VisitorID <= 0 {
		return fmt.Errorf("%w: visitor_id must be positive, got %d", ErrInvalidInput, req.VisitorID)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
