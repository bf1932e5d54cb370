package regenerate_slots

import "time"

// Request asks to re-materialize the slots of every bed under a location
// unit for [From, To), after a rule or exception change. From is clamped to
// the current instant: past slots are never regenerated.
type Request struct {
	UnitID int64
	From   time.Time
	To     time.Time
}

// Response summarizes the regeneration.
type Response struct {
	UnitID       int64
	BedsAffected int
	SlotsDeleted int64
	Candidates   int // candidates offered to the conflict-free insert
}
