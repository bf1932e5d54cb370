package domain

import "time"

// SlotStatus is the administrative status of a visit slot.
type SlotStatus string

const (
	// SlotOpen means the slot is bookable (subject to capacity).
	SlotOpen SlotStatus = "open"
	// SlotBlocked means an administrator closed the slot. Blocked is sticky:
	// regeneration never flips a blocked slot back to open.
	SlotBlocked SlotStatus = "blocked"
)

// VisitSlot is a concrete bookable time window materialized for one bed.
// No two slots for the same bed may share (StartsAt, EndsAt); the database
// enforces this with a unique constraint, which makes materialization
// idempotent.
type VisitSlot struct {
	ID               int64
	BedID            int64
	StartsAt         time.Time
	EndsAt           time.Time // strictly after StartsAt
	Status           SlotStatus
	Capacity         int // >= 1, concurrent active appointments allowed
	RequiresApproval bool

	// Provenance: exactly one of the two is set.
	RuleSetID   *int64
	ExceptionID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocked returns true when an administrator closed the slot.
func (s *VisitSlot) IsBlocked() bool {
	return s.Status == SlotBlocked
}

// IsPast reports whether the slot has already started at the given instant.
func (s *VisitSlot) IsPast(now time.Time) bool {
	return !s.StartsAt.After(now)
}

// AvailableSpots returns remaining capacity given the number of active
// appointments currently held against the slot.
func (s *VisitSlot) AvailableSpots(activeCount int) int {
	if s.IsBlocked() {
		return 0
	}
	remaining := s.Capacity - activeCount
	if remaining < 0 {
		return 0
	}
	return remaining
}
