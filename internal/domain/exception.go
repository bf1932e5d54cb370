package domain

import "time"

// ExceptionKind tells whether the exception closes or opens visiting.
type ExceptionKind string

const (
	// ExceptionBlackout closes visiting for the exception window.
	ExceptionBlackout ExceptionKind = "blackout"
	// ExceptionExtraOpen opens visiting outside normal policy.
	ExceptionExtraOpen ExceptionKind = "extra_open"
)

// ExceptionStatus is the lifecycle status of a rule exception.
type ExceptionStatus string

const (
	ExceptionActive     ExceptionStatus = "active"
	ExceptionCancelled  ExceptionStatus = "cancelled"
	ExceptionSuperseded ExceptionStatus = "superseded"
)

// RuleException is a temporary override of the resolved policy for a scope
// and a concrete time window. Exceptions always take precedence over rule
// sets for their exact overlap; among overlapping exceptions the most
// recently created one wins. Like rule sets, exceptions form append-only
// supersession chains.
type RuleException struct {
	ID               int64
	ScopeUnitID      int64
	Kind             ExceptionKind
	Status           ExceptionStatus
	StartsAt         time.Time
	EndsAt           time.Time // strictly after StartsAt
	OverrideCapacity *int      // extra_open only; nil = default of 1
	Reason           *string
	SupersedesID     *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoversInstant reports whether the exception window [StartsAt, EndsAt)
// covers t.
func (e *RuleException) CoversInstant(t time.Time) bool {
	return !t.Before(e.StartsAt) && t.Before(e.EndsAt)
}

// IntersectsInterval reports whether the window overlaps [from, to).
func (e *RuleException) IntersectsInterval(from, to time.Time) bool {
	return e.StartsAt.Before(to) && e.EndsAt.After(from)
}

// Capacity returns the capacity an extra_open exception grants.
func (e *RuleException) Capacity() int {
	if e.OverrideCapacity != nil && *e.OverrideCapacity > 0 {
		return *e.OverrideCapacity
	}
	return DefaultSlotCapacity
}
