package get_available_slots

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// Request asks for the bookable slots of one bed over [From, To),
// materializing them on demand.
type Request struct {
	BedID int64
	From  time.Time
	To    time.Time
}

// Response lists the persisted slots in range with their availability.
type Response struct {
	BedID int64
	From  time.Time
	To    time.Time
	Slots []Slot
}

// Slot is one bookable window with its remaining capacity.
type Slot struct {
	ID               int64
	StartsAt         time.Time
	EndsAt           time.Time
	Status           domain.SlotStatus
	Capacity         int
	AvailableSpots   int
	RequiresApproval bool
	RuleSetID        *int64
	ExceptionID      *int64
}
