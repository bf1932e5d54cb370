package domain

import (
	"time"

	"github.com/vkotelnikov/HVS-VisitService/pkg/types"
)

// RuleSetStatus is the lifecycle status of a visiting rule set.
type RuleSetStatus string

const (
	RuleSetDraft      RuleSetStatus = "draft"
	RuleSetActive     RuleSetStatus = "active"
	RuleSetSuperseded RuleSetStatus = "superseded"
	RuleSetCancelled  RuleSetStatus = "cancelled"
)

// RuleSet is a versioned visiting policy attached to one location-unit scope.
// Policy is inherited downward to descendant units unless a more specific
// rule set overrides it. Rule sets are never mutated in place: a replacement
// links back via SupersedesID, preserving the audit trail.
type RuleSet struct {
	ID            int64
	ScopeUnitID   int64
	Status        RuleSetStatus
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil = open-ended
	Priority      int        // higher wins on overlap within one scope level
	Payload       RulePayload
	SupersedesID  *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoversInstant reports whether the rule set's effective window covers t.
// The window is [EffectiveFrom, EffectiveTo).
func (r *RuleSet) CoversInstant(t time.Time) bool {
	if t.Before(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && !t.Before(*r.EffectiveTo) {
		return false
	}
	return true
}

// IntersectsInterval reports whether the effective window overlaps [from, to).
func (r *RuleSet) IntersectsInterval(from, to time.Time) bool {
	if !to.After(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && !r.EffectiveTo.After(from) {
		return false
	}
	return true
}

// RulePayload is the structured policy document carried by a rule set.
// Unknown JSON fields are ignored on decode, keeping old binaries forward
// compatible with newer policy documents.
type RulePayload struct {
	Windows             []VisitWindow `json:"windows"`
	SlotDurationMinutes int           `json:"slotDurationMinutes"`
	Capacity            int           `json:"capacity"`
	MaxVisitorsPerDay   int           `json:"maxVisitorsPerDay"` // 0 = unlimited
	RequiresApproval    bool          `json:"requiresApproval"`
}

// SlotDuration returns the slot length, applying the default when unset.
func (p *RulePayload) SlotDuration() int {
	if p.SlotDurationMinutes <= 0 {
		return DefaultSlotDurationMinutes
	}
	return p.SlotDurationMinutes
}

// EffectiveCapacity returns the per-slot capacity, applying the default when
// unset.
func (p *RulePayload) EffectiveCapacity() int {
	if p.Capacity <= 0 {
		return DefaultSlotCapacity
	}
	return p.Capacity
}

// WindowsForWeekday returns the visiting windows applying on the given
// weekday, in declaration order.
func (p *RulePayload) WindowsForWeekday(day time.Weekday) []VisitWindow {
	windows := make([]VisitWindow, 0, len(p.Windows))
	for _, w := range p.Windows {
		if w.AppliesOn(day) {
			windows = append(windows, w)
		}
	}
	return windows
}

// VisitWindow is one recurring daily visiting window, hospital-local.
type VisitWindow struct {
	Weekdays []time.Weekday   `json:"weekdays"` // empty = every day
	Start    types.TimeString `json:"start"`    // "HH:MM"
	End      types.TimeString `json:"end"`      // strictly after Start, "24:00" = end of day
}

// AppliesOn reports whether the window applies on the given weekday.
func (w *VisitWindow) AppliesOn(day time.Weekday) bool {
	if len(w.Weekdays) == 0 {
		return true
	}
	for _, d := range w.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Validate checks the window bounds.
func (w *VisitWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return err
	}
	if w.End != types.TimeString("24:00") {
		if err := w.End.Validate(); err != nil {
			return err
		}
	}
	if !w.Start.IsBefore(w.End) {
		return ErrWindowEndNotAfterStart
	}
	return nil
}
