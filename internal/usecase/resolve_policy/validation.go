package resolve_policy

import "fmt"

// MaxRangeDays caps how far a single resolution request may stretch. Longer
// horizons are resolved in successive requests.
const MaxRangeDays = 92

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
	if req.To.Sub(req.From).Hours() > MaxRangeDays*24 {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInterval, MaxRangeDays)
	}
	return nil
}
