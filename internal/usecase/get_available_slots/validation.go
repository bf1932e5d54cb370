package get_available_slots

import (
	"fmt"

	"github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
)

func validateRequest(req *Request) error {
	if req.BedID <= 0 {
		return fmt.Errorf("%w: bedID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if !req.To.After(req.From) {
		return ErrInvalidInterval
	}
	if req.To.Sub(req.From).Hours() > resolve_policy.MaxRangeDays*24 {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInterval, resolve_policy.MaxRangeDays)
	}
	return nil
}
