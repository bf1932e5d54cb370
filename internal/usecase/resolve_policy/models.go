package resolve_policy

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// Request asks for the effective visiting policy of one bed over [From, To).
type Request struct {
	BedID int64
	From  time.Time
	To    time.Time
}

// Response carries the resolved policy: a gap-free, non-overlapping
// partition of the requested interval.
type Response struct {
	BedID    int64
	Timezone string // hospital timezone the windows were interpreted in
	From     time.Time
	To       time.Time
	Segments []domain.PolicySegment
}
