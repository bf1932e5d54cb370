package domain

import "time"

// PolicySegment is one sub-interval of a resolved effective policy, tagged
// with the access decision in force and its provenance. Exactly one of
// RuleSetID / ExceptionID is set for segments with provenance; segments that
// are closed by default carry neither.
type PolicySegment struct {
	Start time.Time
	End   time.Time // strictly after Start

	Open                bool
	Capacity            int // meaningful when Open
	SlotDurationMinutes int // meaningful when Open
	RequiresApproval    bool

	// WindowStart is the start of the visiting window (or extra_open
	// exception) this segment was cut from. Slot grids anchor here, so a
	// segment clamped to a mid-window range still yields the same slot
	// boundaries as the full window. Zero for closed segments.
	WindowStart time.Time

	RuleSetID   *int64
	ExceptionID *int64
}

// SameDecision reports whether two segments carry an identical decision and
// provenance, i.e. whether they can be merged when adjacent.
func (s *PolicySegment) SameDecision(other *PolicySegment) bool {
	if s.Open != other.Open {
		return false
	}
	if !s.Open {
		return equalID(s.RuleSetID, other.RuleSetID) && equalID(s.ExceptionID, other.ExceptionID)
	}
	return s.Capacity == other.Capacity &&
		s.SlotDurationMinutes == other.SlotDurationMinutes &&
		s.RequiresApproval == other.RequiresApproval &&
		s.WindowStart.Equal(other.WindowStart) &&
		equalID(s.RuleSetID, other.RuleSetID) &&
		equalID(s.ExceptionID, other.ExceptionID)
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
